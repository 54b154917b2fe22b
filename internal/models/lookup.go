package models

// Department groups employees. Departments are maintained outside the
// console; only active rows are offered in the employee form.
type Department struct {
	ID       uint   `gorm:"column:department_id;primaryKey" json:"department_id"`
	Name     string `gorm:"column:department_name;type:varchar(100);not null" json:"department_name"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

func (Department) TableName() string { return "departments" }

// JobTitle is the position an employee holds.
type JobTitle struct {
	ID       uint   `gorm:"column:job_title_id;primaryKey" json:"job_title_id"`
	Name     string `gorm:"column:title_name;type:varchar(100);not null" json:"title_name"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}

func (JobTitle) TableName() string { return "job_titles" }
