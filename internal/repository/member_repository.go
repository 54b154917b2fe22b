package repository

import (
	"context"

	"github.com/staffdesk/admin/internal/models"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

// MemberRepository manages the project/employee assignment table. Unlike
// every other table, rows here are hard-deleted.
type MemberRepository interface {
	ListMembers(ctx context.Context, projectID uint) ([]models.EmployeeSummary, error)
	Assign(ctx context.Context, projectID, employeeID uint) error
	Remove(ctx context.Context, projectID, employeeID uint) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) ListMembers(ctx context.Context, projectID uint) ([]models.EmployeeSummary, error) {
	var out []models.EmployeeSummary
	err := r.db.WithContext(ctx).
		Table("project_members AS pm").
		Select("e.employee_id, e.employee_number, e.first_name, e.last_name").
		Joins("JOIN employees e ON pm.employee_id = e.employee_id").
		Where("pm.project_id = ?", projectID).
		Order("e.last_name, e.first_name").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list project members failed")
	}
	return out, nil
}

// Assign inserts the pair. A second assignment of the same pair is rejected
// by the composite primary key and reported as CodeAlreadyExists.
func (r *memberRepository) Assign(ctx context.Context, projectID, employeeID uint) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		m := models.ProjectMember{ProjectID: projectID, EmployeeID: employeeID}
		if err := tx.Create(&m).Error; err != nil {
			return translateWriteError(err, "assign project member failed")
		}
		return nil
	})
}

// Remove deletes the pair if present; removing an absent pair is a no-op.
func (r *memberRepository) Remove(ctx context.Context, projectID, employeeID uint) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.Where("project_id = ? AND employee_id = ?", projectID, employeeID).
			Delete(&models.ProjectMember{}).Error
		if err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "remove project member failed")
		}
		return nil
	})
}
