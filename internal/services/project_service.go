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

type ProjectService interface {
	List(ctx context.Context, show models.Show) ([]models.ProjectRow, error)
	FormOptions(ctx context.Context) (*ProjectFormOptions, error)
	Get(ctx context.Context, id uint) (*models.Project, error)
	Create(ctx context.Context, input *ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id uint, input *ProjectInput) error
	Disable(ctx context.Context, id uint) error
}

// ProjectInput carries a submitted project form. A blank Status falls back
// to models.DefaultProjectStatus.
type ProjectInput struct {
	ClientID    uint
	ProjectCode string
	ProjectName string
	StartDate   datatypes.Date
	EndDate     *datatypes.Date
	Status      string
	IsActive    bool
}

type ProjectFormOptions struct {
	Clients  []models.Client
	Statuses []string
}

type projectService struct {
	projects repository.ProjectRepository
	clients  repository.ClientRepository
}

func NewProjectService(projects repository.ProjectRepository, clients repository.ClientRepository) ProjectService {
	return &projectService{projects: projects, clients: clients}
}

// Ensure interfaces are satisfied at compile time
var _ ProjectService = (*projectService)(nil)

func (s *projectService) List(ctx context.Context, show models.Show) ([]models.ProjectRow, error) {
	logger.L().Debug("list projects", zap.String("show", string(show)))
	return s.projects.List(ctx, show)
}

func (s *projectService) FormOptions(ctx context.Context) (*ProjectFormOptions, error) {
	clients, err := s.clients.List(ctx, models.ShowActive)
	if err != nil {
		return nil, err
	}
	return &ProjectFormOptions{Clients: clients, Statuses: models.ProjectStatuses}, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Create(ctx context.Context, input *ProjectInput) (*models.Project, error) {
	p := &models.Project{
		ClientID:    input.ClientID,
		ProjectCode: strings.TrimSpace(input.ProjectCode),
		ProjectName: strings.TrimSpace(input.ProjectName),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      orDefault(input.Status, models.DefaultProjectStatus),
		IsActive:    true,
	}
	logger.L().Info("create project", zap.String("project_code", p.ProjectCode), zap.Uint("client_id", p.ClientID))

	if err := s.projects.Create(ctx, p); err != nil {
		logger.L().Warn("create project failed", zap.String("project_code", p.ProjectCode), zap.Error(err))
		return nil, err
	}

	logger.L().Info("project created", zap.Uint("project_id", p.ID))
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id uint, input *ProjectInput) error {
	logger.L().Info("update project", zap.Uint("project_id", id), zap.Bool("is_active", input.IsActive))
	fields := map[string]any{
		"client_id":    input.ClientID,
		"project_code": strings.TrimSpace(input.ProjectCode),
		"project_name": strings.TrimSpace(input.ProjectName),
		"start_date":   input.StartDate,
		"end_date":     column(input.EndDate),
		"status":       orDefault(input.Status, models.DefaultProjectStatus),
		"is_active":    input.IsActive,
	}
	if err := s.projects.Update(ctx, id, fields); err != nil {
		logger.L().Warn("update project failed", zap.Uint("project_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *projectService) Disable(ctx context.Context, id uint) error {
	logger.L().Info("disable project", zap.Uint("project_id", id))
	return s.projects.Disable(ctx, id)
}
