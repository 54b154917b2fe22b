package models

import "gorm.io/datatypes"

const DefaultProjectStatus = "Active"

// ProjectStatuses are the values offered by the project form. The column
// itself is free text.
var ProjectStatuses = []string{"Active", "On Hold", "Completed", "Cancelled"}

// Project is billable work for a single client.
type Project struct {
	ID          uint            `gorm:"column:project_id;primaryKey" json:"project_id"`
	ClientID    uint            `gorm:"not null;index" json:"client_id"`
	ProjectCode string          `gorm:"type:varchar(20);not null;uniqueIndex:uq_projects_project_code" json:"project_code"`
	ProjectName string          `gorm:"type:varchar(150);not null" json:"project_name"`
	StartDate   datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate     *datatypes.Date `json:"end_date"`
	Status      string          `gorm:"type:varchar(30);not null" json:"status"`
	IsActive    bool            `gorm:"not null;index" json:"is_active"`

	Client *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Project) TableName() string { return "projects" }

// ProjectRow is a project joined with its client's name.
type ProjectRow struct {
	ID          uint            `gorm:"column:project_id"`
	ProjectCode string          `gorm:"column:project_code"`
	ProjectName string          `gorm:"column:project_name"`
	StartDate   datatypes.Date  `gorm:"column:start_date"`
	EndDate     *datatypes.Date `gorm:"column:end_date"`
	Status      string          `gorm:"column:status"`
	IsActive    bool            `gorm:"column:is_active"`
	ClientName  string          `gorm:"column:client_name"`
}

// ProjectHeader heads the membership page.
type ProjectHeader struct {
	ID          uint   `gorm:"column:project_id"`
	ProjectCode string `gorm:"column:project_code"`
	ProjectName string `gorm:"column:project_name"`
	ClientName  string `gorm:"column:client_name"`
}

// ProjectOption feeds project dropdowns.
type ProjectOption struct {
	ID          uint   `gorm:"column:project_id"`
	ProjectCode string `gorm:"column:project_code"`
	ProjectName string `gorm:"column:project_name"`
}

// ProjectMember assigns an employee to a project. The pair is the primary key.
type ProjectMember struct {
	ProjectID  uint `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	EmployeeID uint `gorm:"primaryKey;autoIncrement:false;index" json:"employee_id"`

	Project  *Project  `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProjectMember) TableName() string { return "project_members" }
