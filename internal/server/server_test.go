package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealmate/backend/config"
	"github.com/mealmate/backend/internal/localstore"
	"github.com/mealmate/backend/internal/notify"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNew(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NotNil(t, db)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  "test-secret",
	}

	server := New(cfg, db)
	assert.NotNil(t, server)

	// Test health check endpoint
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewSchedulesPlanningReminders(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  "test-secret",
	}

	facility := notify.NewMemoryFacility()
	server := New(cfg, db, Options{
		Facility: facility,
		Store:    localstore.NewMemoryStore(),
	})
	assert.NotNil(t, server)

	// Default settings enable breakfast, lunch and dinner nudges; they
	// come back after every restart without a settings save.
	handles, err := facility.ListScheduled(context.Background())
	assert.NoError(t, err)
	assert.Len(t, handles, 3)
}
