package repository

import (
	"context"
	"errors"

	"github.com/staffdesk/admin/pkg/database"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"gorm.io/gorm"
)

// MetaField is the AppError metadata key naming the unique column a write
// collided with.
const MetaField = "field"

// BaseRepository defines the operations shared by every soft-deletable entity.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id uint, dest *T) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Disable(ctx context.Context, id uint) error
}

type baseRepository[T any] struct {
	db           *gorm.DB
	entity       string
	pk           string
	uniqueFields []string
}

// NewBaseRepository builds the shared CRUD for T. pk is the primary key
// column; uniqueFields are the columns whose violations are reported back
// to the caller by name.
func NewBaseRepository[T any](db *gorm.DB, entity, pk string, uniqueFields ...string) BaseRepository[T] {
	return &baseRepository[T]{db: db, entity: entity, pk: pk, uniqueFields: uniqueFields}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(obj).Error; err != nil {
			return translateWriteError(err, "create "+r.entity+" failed", r.uniqueFields...)
		}
		return nil
	})
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id uint, dest *T) error {
	if err := r.db.WithContext(ctx).Where(r.pk+" = ?", id).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, r.entity+" not found").WithMeta("id", id)
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get "+r.entity+" failed")
	}
	return nil
}

// Update writes fields by column name so that zero values (false, NULL) are
// persisted. Rows-affected is not checked: MySQL reports 0 for an update that
// changes nothing.
func (r *baseRepository[T]) Update(ctx context.Context, id uint, fields map[string]any) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Where(r.pk+" = ?", id).Updates(fields).Error; err != nil {
			return translateWriteError(err, "update "+r.entity+" failed", r.uniqueFields...)
		}
		return nil
	})
}

func (r *baseRepository[T]) Disable(ctx context.Context, id uint) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Where(r.pk+" = ?", id).Update("is_active", false).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "disable "+r.entity+" failed")
		}
		return nil
	})
}

// withTx runs fn inside an explicit transaction. The transaction is rolled
// back whenever fn fails, and fn's error is returned unchanged.
func withTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return appErr.Wrap(tx.Error, appErr.CodeInternal, "begin transaction failed")
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "commit transaction failed")
	}
	return nil
}

// translateWriteError maps a failed insert/update onto an AppError. Unique
// violations become CodeAlreadyExists, tagged with the first of fields the
// violated key covers.
func translateWriteError(err error, message string, fields ...string) error {
	v, ok := database.AsUniqueViolation(err)
	if !ok {
		return appErr.Wrap(err, appErr.CodeInternal, message)
	}
	ae := appErr.Wrap(err, appErr.CodeAlreadyExists, message)
	for _, f := range fields {
		if v.Involves(f) {
			ae.WithMeta(MetaField, f)
			break
		}
	}
	return ae
}
