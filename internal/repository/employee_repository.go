package repository

import (
	"context"

	"github.com/staffdesk/admin/internal/models"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

const (
	FieldEmployeeNumber = "employee_number"
	FieldEmail          = "email"
)

type EmployeeRepository interface {
	BaseRepository[models.Employee]
	List(ctx context.Context, show models.Show) ([]models.EmployeeRow, error)
	ActiveSummaries(ctx context.Context) ([]models.EmployeeSummary, error)
}

type employeeRepository struct {
	BaseRepository[models.Employee]
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{
		BaseRepository: NewBaseRepository[models.Employee](db, "employee", "employee_id", FieldEmployeeNumber, FieldEmail),
		db:             db,
	}
}

func (r *employeeRepository) List(ctx context.Context, show models.Show) ([]models.EmployeeRow, error) {
	q := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(`e.employee_id, e.employee_number, e.first_name, e.last_name, e.email, e.phone,
			e.hire_date, e.is_active, d.department_name, j.title_name`).
		Joins("JOIN departments d ON e.department_id = d.department_id").
		Joins("JOIN job_titles j ON e.job_title_id = j.job_title_id")
	if show.ActiveOnly() {
		q = q.Where("e.is_active = ?", true)
	}

	var out []models.EmployeeRow
	if err := q.Order("e.last_name, e.first_name").Scan(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list employees failed")
	}
	return out, nil
}

func (r *employeeRepository) ActiveSummaries(ctx context.Context) ([]models.EmployeeSummary, error) {
	var out []models.EmployeeSummary
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("employee_id, employee_number, first_name, last_name").
		Where("is_active = ?", true).
		Order("last_name, first_name").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list active employees failed")
	}
	return out, nil
}
