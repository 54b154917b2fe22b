package repository

import (
	"context"

	"github.com/staffdesk/admin/internal/models"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

const FieldClientName = "client_name"

type ClientRepository interface {
	BaseRepository[models.Client]
	List(ctx context.Context, show models.Show) ([]models.Client, error)
}

type clientRepository struct {
	BaseRepository[models.Client]
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{
		BaseRepository: NewBaseRepository[models.Client](db, "client", "client_id", FieldClientName),
		db:             db,
	}
}

// List doubles as the active-client dropdown source when show is active.
func (r *clientRepository) List(ctx context.Context, show models.Show) ([]models.Client, error) {
	q := r.db.WithContext(ctx)
	if show.ActiveOnly() {
		q = q.Where("is_active = ?", true)
	}
	var out []models.Client
	if err := q.Order("client_name").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list clients failed")
	}
	return out, nil
}
