package services

import (
	"context"
	"strings"

	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/pkg/logger"
	"go.uber.org/zap"
)

type ClientService interface {
	List(ctx context.Context, show models.Show) ([]models.Client, error)
	Get(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, input *ClientInput) (*models.Client, error)
	Update(ctx context.Context, id uint, input *ClientInput) error
	Disable(ctx context.Context, id uint) error
}

type ClientInput struct {
	ClientName   string
	ContactName  string
	ContactEmail string
	ContactPhone string
	IsActive     bool
}

type clientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

var _ ClientService = (*clientService)(nil)

func (s *clientService) List(ctx context.Context, show models.Show) ([]models.Client, error) {
	logger.L().Debug("list clients", zap.String("show", string(show)))
	return s.clients.List(ctx, show)
}

func (s *clientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := s.clients.GetByID(ctx, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *clientService) Create(ctx context.Context, input *ClientInput) (*models.Client, error) {
	c := &models.Client{
		ClientName:   strings.TrimSpace(input.ClientName),
		ContactName:  optional(input.ContactName),
		ContactEmail: optional(input.ContactEmail),
		ContactPhone: optional(input.ContactPhone),
		IsActive:     true,
	}
	logger.L().Info("create client", zap.String("client_name", c.ClientName))

	if err := s.clients.Create(ctx, c); err != nil {
		logger.L().Warn("create client failed", zap.String("client_name", c.ClientName), zap.Error(err))
		return nil, err
	}

	logger.L().Info("client created", zap.Uint("client_id", c.ID))
	return c, nil
}

func (s *clientService) Update(ctx context.Context, id uint, input *ClientInput) error {
	logger.L().Info("update client", zap.Uint("client_id", id), zap.Bool("is_active", input.IsActive))
	fields := map[string]any{
		"client_name":   strings.TrimSpace(input.ClientName),
		"contact_name":  column(optional(input.ContactName)),
		"contact_email": column(optional(input.ContactEmail)),
		"contact_phone": column(optional(input.ContactPhone)),
		"is_active":     input.IsActive,
	}
	if err := s.clients.Update(ctx, id, fields); err != nil {
		logger.L().Warn("update client failed", zap.Uint("client_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *clientService) Disable(ctx context.Context, id uint) error {
	logger.L().Info("disable client", zap.Uint("client_id", id))
	return s.clients.Disable(ctx, id)
}
