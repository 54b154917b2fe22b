package repository

import (
	"context"
	"errors"

	"github.com/staffdesk/admin/internal/models"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

const FieldProjectCode = "project_code"

type ProjectRepository interface {
	BaseRepository[models.Project]
	List(ctx context.Context, show models.Show) ([]models.ProjectRow, error)
	ActiveOptions(ctx context.Context) ([]models.ProjectOption, error)
	Header(ctx context.Context, projectID uint) (*models.ProjectHeader, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{
		BaseRepository: NewBaseRepository[models.Project](db, "project", "project_id", FieldProjectCode),
		db:             db,
	}
}

func (r *projectRepository) List(ctx context.Context, show models.Show) ([]models.ProjectRow, error) {
	q := r.db.WithContext(ctx).
		Table("projects AS p").
		Select(`p.project_id, p.project_code, p.project_name, p.start_date, p.end_date, p.status, p.is_active,
			c.client_name`).
		Joins("JOIN clients c ON p.client_id = c.client_id")
	if show.ActiveOnly() {
		q = q.Where("p.is_active = ?", true)
	}

	var out []models.ProjectRow
	if err := q.Order("p.project_code").Scan(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list projects failed")
	}
	return out, nil
}

func (r *projectRepository) ActiveOptions(ctx context.Context) ([]models.ProjectOption, error) {
	var out []models.ProjectOption
	err := r.db.WithContext(ctx).
		Table("projects").
		Select("project_id, project_code, project_name").
		Where("is_active = ?", true).
		Order("project_code").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list active projects failed")
	}
	return out, nil
}

func (r *projectRepository) Header(ctx context.Context, projectID uint) (*models.ProjectHeader, error) {
	var h models.ProjectHeader
	err := r.db.WithContext(ctx).
		Table("projects AS p").
		Select("p.project_id, p.project_code, p.project_name, c.client_name").
		Joins("JOIN clients c ON p.client_id = c.client_id").
		Where("p.project_id = ?", projectID).
		Take(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "project not found").WithMeta("id", projectID)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get project header failed")
	}
	return &h, nil
}
