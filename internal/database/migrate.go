package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mealmate/backend/internal/model"
)

// RunMigrations brings the schema up to date and backfills columns
// added after the first release.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Meal{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// The favorite column was added after meals already existed; records
	// written before it carry NULL, which is unmatchable in favorites
	// queries. Backfill to false once per startup; reruns match nothing.
	result := db.Model(&model.Meal{}).Where("favorite IS NULL").Update("favorite", false)
	if result.Error != nil {
		return fmt.Errorf("failed to backfill favorite column: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Backfilled favorite=false on %d meals", result.RowsAffected)
	}

	return nil
}
