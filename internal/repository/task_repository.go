package repository

import (
	"context"

	"github.com/staffdesk/admin/internal/models"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

type TaskRepository interface {
	BaseRepository[models.Task]
	List(ctx context.Context, filter models.TaskFilter) ([]models.TaskRow, error)
}

type taskRepository struct {
	BaseRepository[models.Task]
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{
		BaseRepository: NewBaseRepository[models.Task](db, "task", "task_id"),
		db:             db,
	}
}

// List orders by project code, then due date with undated tasks last, then name.
func (r *taskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.TaskRow, error) {
	q := r.db.WithContext(ctx).
		Table("tasks AS t").
		Select(`t.task_id, t.task_name, t.task_status, t.due_date, t.is_active,
			p.project_code, p.project_name, e.first_name, e.last_name`).
		Joins("JOIN projects p ON t.project_id = p.project_id").
		Joins("LEFT JOIN employees e ON t.employee_id = e.employee_id")
	if filter.ProjectID != nil {
		q = q.Where("t.project_id = ?", *filter.ProjectID)
	}
	if filter.Show.ActiveOnly() {
		q = q.Where("t.is_active = ?", true)
	}

	var out []models.TaskRow
	err := q.Order("p.project_code").
		Order("t.due_date IS NULL").
		Order("t.due_date").
		Order("t.task_name").
		Scan(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list tasks failed")
	}
	return out, nil
}
