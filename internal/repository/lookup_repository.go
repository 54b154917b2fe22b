package repository

import (
	"context"

	"github.com/staffdesk/admin/internal/models"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

// LookupRepository serves the reference tables behind the employee form.
type LookupRepository interface {
	ActiveDepartments(ctx context.Context) ([]models.Department, error)
	ActiveJobTitles(ctx context.Context) ([]models.JobTitle, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) ActiveDepartments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("department_name").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list departments failed")
	}
	return out, nil
}

func (r *lookupRepository) ActiveJobTitles(ctx context.Context) ([]models.JobTitle, error) {
	var out []models.JobTitle
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("title_name").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list job titles failed")
	}
	return out, nil
}
