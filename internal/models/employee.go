package models

import "gorm.io/datatypes"

// Employee is a person on the payroll. EmployeeNumber and Email are unique
// across active and inactive rows alike.
type Employee struct {
	ID             uint           `gorm:"column:employee_id;primaryKey" json:"employee_id"`
	EmployeeNumber string         `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_employee_number" json:"employee_number"`
	FirstName      string         `gorm:"type:varchar(50);not null;index:idx_employees_name,priority:2" json:"first_name"`
	LastName       string         `gorm:"type:varchar(50);not null;index:idx_employees_name,priority:1" json:"last_name"`
	Email          string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email" json:"email"`
	Phone          *string        `gorm:"type:varchar(30)" json:"phone"`
	HireDate       datatypes.Date `gorm:"not null" json:"hire_date"`
	DepartmentID   uint           `gorm:"not null;index" json:"department_id"`
	JobTitleID     uint           `gorm:"not null;index" json:"job_title_id"`
	IsActive       bool           `gorm:"not null;index" json:"is_active"`

	Department *Department `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	JobTitle   *JobTitle   `gorm:"foreignKey:JobTitleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Employee) TableName() string { return "employees" }

// EmployeeRow is an employee joined with its department and job title names.
type EmployeeRow struct {
	ID             uint           `gorm:"column:employee_id"`
	EmployeeNumber string         `gorm:"column:employee_number"`
	FirstName      string         `gorm:"column:first_name"`
	LastName       string         `gorm:"column:last_name"`
	Email          string         `gorm:"column:email"`
	Phone          *string        `gorm:"column:phone"`
	HireDate       datatypes.Date `gorm:"column:hire_date"`
	IsActive       bool           `gorm:"column:is_active"`
	DepartmentName string         `gorm:"column:department_name"`
	TitleName      string         `gorm:"column:title_name"`
}

// EmployeeSummary is the short form used by member lists and assignee dropdowns.
type EmployeeSummary struct {
	ID             uint   `gorm:"column:employee_id"`
	EmployeeNumber string `gorm:"column:employee_number"`
	FirstName      string `gorm:"column:first_name"`
	LastName       string `gorm:"column:last_name"`
}
