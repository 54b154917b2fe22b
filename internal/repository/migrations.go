package repository

import (
	"context"
	"fmt"

	"github.com/staffdesk/admin/internal/models"
	"gorm.io/gorm"
)

// DefaultDepartments and DefaultJobTitles are inserted by SeedLookups into
// empty tables.
var (
	DefaultDepartments = []string{"Engineering", "Finance", "Human Resources", "Operations", "Sales"}
	DefaultJobTitles   = []string{"Analyst", "Engineer", "Manager", "Project Manager", "Specialist"}
)

// Migrate creates or updates every table, index and foreign key.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedLookups fills the departments and job_titles tables when they are
// empty. Existing rows are never touched.
func SeedLookups(ctx context.Context, db *gorm.DB) error {
	return withTx(ctx, db, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Department{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count departments: %w", err)
		}
		if n == 0 {
			rows := make([]models.Department, 0, len(DefaultDepartments))
			for _, name := range DefaultDepartments {
				rows = append(rows, models.Department{Name: name, IsActive: true})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("seed departments: %w", err)
			}
		}

		if err := tx.Model(&models.JobTitle{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count job titles: %w", err)
		}
		if n == 0 {
			rows := make([]models.JobTitle, 0, len(DefaultJobTitles))
			for _, name := range DefaultJobTitles {
				rows = append(rows, models.JobTitle{Name: name, IsActive: true})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("seed job titles: %w", err)
			}
		}
		return nil
	})
}
