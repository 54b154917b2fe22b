package models

import "gorm.io/datatypes"

const DefaultTaskStatus = "To Do"

// TaskStatuses are the values offered by the task form.
var TaskStatuses = []string{"To Do", "In Progress", "Blocked", "Done"}

// Task is a unit of work on a project, optionally assigned to an employee.
// A task stays visible when its assignee is disabled.
type Task struct {
	ID         uint            `gorm:"column:task_id;primaryKey" json:"task_id"`
	ProjectID  uint            `gorm:"not null;index:idx_tasks_project_due,priority:1" json:"project_id"`
	EmployeeID *uint           `gorm:"index" json:"employee_id"`
	TaskName   string          `gorm:"type:varchar(200);not null" json:"task_name"`
	TaskStatus string          `gorm:"type:varchar(30);not null" json:"task_status"`
	DueDate    *datatypes.Date `gorm:"index:idx_tasks_project_due,priority:2" json:"due_date"`
	IsActive   bool            `gorm:"not null;index" json:"is_active"`

	Project  *Project  `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (Task) TableName() string { return "tasks" }

// TaskRow is a task joined with its project and (optional) assignee.
type TaskRow struct {
	ID          uint            `gorm:"column:task_id"`
	TaskName    string          `gorm:"column:task_name"`
	TaskStatus  string          `gorm:"column:task_status"`
	DueDate     *datatypes.Date `gorm:"column:due_date"`
	IsActive    bool            `gorm:"column:is_active"`
	ProjectCode string          `gorm:"column:project_code"`
	ProjectName string          `gorm:"column:project_name"`
	FirstName   *string         `gorm:"column:first_name"`
	LastName    *string         `gorm:"column:last_name"`
}
