package types

import (
	"strconv"
	"time"

	"github.com/staffdesk/admin/internal/services"
	"gorm.io/datatypes"
)

// Form structs hold raw, trimmed form values. They are validated before the
// Input conversions run, so the conversions only fail on values the
// validator cannot see (such as ids overflowing uint).

const dateLayout = "2006-01-02"

type EmployeeForm struct {
	EmployeeNumber string `form:"employee_number" validate:"required"`
	FirstName      string `form:"first_name" validate:"required"`
	LastName       string `form:"last_name" validate:"required"`
	Email          string `form:"email" validate:"required"`
	Phone          string `form:"phone"`
	HireDate       string `form:"hire_date" validate:"required,datetime=2006-01-02"`
	DepartmentID   string `form:"department_id" validate:"required,number"`
	JobTitleID     string `form:"job_title_id" validate:"required,number"`
	IsActive       string `form:"is_active"`
}

func (f *EmployeeForm) Input() (*services.EmployeeInput, error) {
	hire, err := parseDate(f.HireDate)
	if err != nil {
		return nil, err
	}
	dept, err := ParseID(f.DepartmentID)
	if err != nil {
		return nil, err
	}
	title, err := ParseID(f.JobTitleID)
	if err != nil {
		return nil, err
	}
	return &services.EmployeeInput{
		EmployeeNumber: f.EmployeeNumber,
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Email:          f.Email,
		Phone:          f.Phone,
		HireDate:       hire,
		DepartmentID:   dept,
		JobTitleID:     title,
		IsActive:       checked(f.IsActive),
	}, nil
}

type ClientForm struct {
	ClientName   string `form:"client_name" validate:"required"`
	ContactName  string `form:"contact_name"`
	ContactEmail string `form:"contact_email"`
	ContactPhone string `form:"contact_phone"`
	IsActive     string `form:"is_active"`
}

func (f *ClientForm) Input() *services.ClientInput {
	return &services.ClientInput{
		ClientName:   f.ClientName,
		ContactName:  f.ContactName,
		ContactEmail: f.ContactEmail,
		ContactPhone: f.ContactPhone,
		IsActive:     checked(f.IsActive),
	}
}

type ProjectForm struct {
	ClientID    string `form:"client_id" validate:"required,number"`
	ProjectCode string `form:"project_code" validate:"required"`
	ProjectName string `form:"project_name" validate:"required"`
	StartDate   string `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `form:"status"`
	IsActive    string `form:"is_active"`
}

func (f *ProjectForm) Input() (*services.ProjectInput, error) {
	client, err := ParseID(f.ClientID)
	if err != nil {
		return nil, err
	}
	start, err := parseDate(f.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(f.EndDate)
	if err != nil {
		return nil, err
	}
	return &services.ProjectInput{
		ClientID:    client,
		ProjectCode: f.ProjectCode,
		ProjectName: f.ProjectName,
		StartDate:   start,
		EndDate:     end,
		Status:      f.Status,
		IsActive:    checked(f.IsActive),
	}, nil
}

type MemberForm struct {
	EmployeeID string `form:"employee_id" validate:"required,number"`
}

type TaskForm struct {
	ProjectID  string `form:"project_id" validate:"required,number"`
	EmployeeID string `form:"employee_id" validate:"omitempty,number"`
	TaskName   string `form:"task_name" validate:"required"`
	TaskStatus string `form:"task_status"`
	DueDate    string `form:"due_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive   string `form:"is_active"`
}

func (f *TaskForm) Input() (*services.TaskInput, error) {
	project, err := ParseID(f.ProjectID)
	if err != nil {
		return nil, err
	}
	var employee *uint
	if f.EmployeeID != "" {
		id, err := ParseID(f.EmployeeID)
		if err != nil {
			return nil, err
		}
		employee = &id
	}
	due, err := parseOptionalDate(f.DueDate)
	if err != nil {
		return nil, err
	}
	return &services.TaskInput{
		ProjectID:  project,
		EmployeeID: employee,
		TaskName:   f.TaskName,
		TaskStatus: f.TaskStatus,
		DueDate:    due,
		IsActive:   checked(f.IsActive),
	}, nil
}

// ParseID parses a decimal row id.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func parseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// checked mirrors an HTML checkbox submitted with value="1".
func checked(v string) bool { return v == "1" }
