package services

import (
	"context"
	"strings"

	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type EmployeeService interface {
	List(ctx context.Context, show models.Show) ([]models.EmployeeRow, error)
	FormOptions(ctx context.Context) (*EmployeeFormOptions, error)
	Get(ctx context.Context, id uint) (*models.Employee, error)
	Create(ctx context.Context, input *EmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, id uint, input *EmployeeInput) error
	Disable(ctx context.Context, id uint) error
}

// EmployeeInput carries a submitted employee form. IsActive is ignored on
// create; new employees are always active.
type EmployeeInput struct {
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	HireDate       datatypes.Date
	DepartmentID   uint
	JobTitleID     uint
	IsActive       bool
}

// EmployeeFormOptions are the dropdown choices of the employee form.
type EmployeeFormOptions struct {
	Departments []models.Department
	JobTitles   []models.JobTitle
}

type employeeService struct {
	employees repository.EmployeeRepository
	lookups   repository.LookupRepository
}

func NewEmployeeService(employees repository.EmployeeRepository, lookups repository.LookupRepository) EmployeeService {
	return &employeeService{employees: employees, lookups: lookups}
}

var _ EmployeeService = (*employeeService)(nil)

func (s *employeeService) List(ctx context.Context, show models.Show) ([]models.EmployeeRow, error) {
	logger.L().Debug("list employees", zap.String("show", string(show)))
	return s.employees.List(ctx, show)
}

func (s *employeeService) FormOptions(ctx context.Context) (*EmployeeFormOptions, error) {
	depts, err := s.lookups.ActiveDepartments(ctx)
	if err != nil {
		return nil, err
	}
	titles, err := s.lookups.ActiveJobTitles(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeFormOptions{Departments: depts, JobTitles: titles}, nil
}

func (s *employeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	if err := s.employees.GetByID(ctx, id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *employeeService) Create(ctx context.Context, input *EmployeeInput) (*models.Employee, error) {
	e := &models.Employee{
		EmployeeNumber: strings.TrimSpace(input.EmployeeNumber),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          strings.TrimSpace(input.Email),
		Phone:          optional(input.Phone),
		HireDate:       input.HireDate,
		DepartmentID:   input.DepartmentID,
		JobTitleID:     input.JobTitleID,
		IsActive:       true,
	}
	logger.L().Info("create employee", zap.String("employee_number", e.EmployeeNumber), zap.String("email", e.Email))

	if err := s.employees.Create(ctx, e); err != nil {
		logger.L().Warn("create employee failed", zap.String("employee_number", e.EmployeeNumber), zap.Error(err))
		return nil, err
	}

	logger.L().Info("employee created", zap.Uint("employee_id", e.ID))
	return e, nil
}

func (s *employeeService) Update(ctx context.Context, id uint, input *EmployeeInput) error {
	logger.L().Info("update employee", zap.Uint("employee_id", id), zap.Bool("is_active", input.IsActive))
	fields := map[string]any{
		"employee_number": strings.TrimSpace(input.EmployeeNumber),
		"first_name":      strings.TrimSpace(input.FirstName),
		"last_name":       strings.TrimSpace(input.LastName),
		"email":           strings.TrimSpace(input.Email),
		"phone":           column(optional(input.Phone)),
		"hire_date":       input.HireDate,
		"department_id":   input.DepartmentID,
		"job_title_id":    input.JobTitleID,
		"is_active":       input.IsActive,
	}
	if err := s.employees.Update(ctx, id, fields); err != nil {
		logger.L().Warn("update employee failed", zap.Uint("employee_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *employeeService) Disable(ctx context.Context, id uint) error {
	logger.L().Info("disable employee", zap.Uint("employee_id", id))
	return s.employees.Disable(ctx, id)
}
