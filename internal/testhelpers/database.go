package testhelpers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealmate/backend/internal/model"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
// Suitable for service-level tests; container-backed Postgres lives in
// the testdb package.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Meal{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
