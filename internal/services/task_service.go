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

type TaskService interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.TaskRow, error)
	ProjectOptions(ctx context.Context) ([]models.ProjectOption, error)
	FormOptions(ctx context.Context) (*TaskFormOptions, error)
	Get(ctx context.Context, id uint) (*models.Task, error)
	Create(ctx context.Context, input *TaskInput) (*models.Task, error)
	Update(ctx context.Context, id uint, input *TaskInput) error
	Disable(ctx context.Context, id uint) error
}

// TaskInput carries a submitted task form. A nil EmployeeID leaves the task
// unassigned; a blank TaskStatus falls back to models.DefaultTaskStatus.
type TaskInput struct {
	ProjectID  uint
	EmployeeID *uint
	TaskName   string
	TaskStatus string
	DueDate    *datatypes.Date
	IsActive   bool
}

type TaskFormOptions struct {
	Projects  []models.ProjectOption
	Employees []models.EmployeeSummary
	Statuses  []string
}

type taskService struct {
	tasks     repository.TaskRepository
	projects  repository.ProjectRepository
	employees repository.EmployeeRepository
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, employees repository.EmployeeRepository) TaskService {
	return &taskService{tasks: tasks, projects: projects, employees: employees}
}

var _ TaskService = (*taskService)(nil)

func (s *taskService) List(ctx context.Context, filter models.TaskFilter) ([]models.TaskRow, error) {
	fields := []zap.Field{zap.String("show", string(filter.Show))}
	if filter.ProjectID != nil {
		fields = append(fields, zap.Uint("project_id", *filter.ProjectID))
	}
	logger.L().Debug("list tasks", fields...)
	return s.tasks.List(ctx, filter)
}

// ProjectOptions feeds the project filter of the task board.
func (s *taskService) ProjectOptions(ctx context.Context) ([]models.ProjectOption, error) {
	return s.projects.ActiveOptions(ctx)
}

func (s *taskService) FormOptions(ctx context.Context) (*TaskFormOptions, error) {
	projects, err := s.projects.ActiveOptions(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.ActiveSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return &TaskFormOptions{Projects: projects, Employees: employees, Statuses: models.TaskStatuses}, nil
}

func (s *taskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := s.tasks.GetByID(ctx, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *taskService) Create(ctx context.Context, input *TaskInput) (*models.Task, error) {
	t := &models.Task{
		ProjectID:  input.ProjectID,
		EmployeeID: input.EmployeeID,
		TaskName:   strings.TrimSpace(input.TaskName),
		TaskStatus: orDefault(input.TaskStatus, models.DefaultTaskStatus),
		DueDate:    input.DueDate,
		IsActive:   true,
	}
	logger.L().Info("create task", zap.Uint("project_id", t.ProjectID), zap.String("task_name", t.TaskName))

	if err := s.tasks.Create(ctx, t); err != nil {
		logger.L().Warn("create task failed", zap.Uint("project_id", t.ProjectID), zap.Error(err))
		return nil, err
	}

	logger.L().Info("task created", zap.Uint("task_id", t.ID))
	return t, nil
}

func (s *taskService) Update(ctx context.Context, id uint, input *TaskInput) error {
	logger.L().Info("update task", zap.Uint("task_id", id), zap.Uint("project_id", input.ProjectID))
	fields := map[string]any{
		"project_id":  input.ProjectID,
		"employee_id": column(input.EmployeeID),
		"task_name":   strings.TrimSpace(input.TaskName),
		"task_status": orDefault(input.TaskStatus, models.DefaultTaskStatus),
		"due_date":    column(input.DueDate),
		"is_active":   input.IsActive,
	}
	if err := s.tasks.Update(ctx, id, fields); err != nil {
		logger.L().Warn("update task failed", zap.Uint("task_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *taskService) Disable(ctx context.Context, id uint) error {
	logger.L().Info("disable task", zap.Uint("task_id", id))
	return s.tasks.Disable(ctx, id)
}
