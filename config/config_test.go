package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "postgres")
	os.Setenv("DB_PASSWORD", "postgres")
	os.Setenv("DB_NAME", "mealmate")
	os.Setenv("DB_SSL_MODE", "disable")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test database configuration
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "mealmate", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)

	// Test JWT configuration
	assert.Equal(t, "test-secret", cfg.JWTSecret)

	// Test Redis configuration
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	// Clear environment variables to test defaults
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USER")
	os.Unsetenv("DB_PASSWORD")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("DB_SSL_MODE")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("REDIS_URL")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test default values
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "mealmate", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "your-secret-key", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "reminders", cfg.ReminderQueue)
	assert.Equal(t, "", cfg.ImageBackend)
}

func TestLoadConfigInvalidImageBackend(t *testing.T) {
	os.Setenv("IMAGE_BACKEND", "imgur")
	defer os.Unsetenv("IMAGE_BACKEND")

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfigCloudinaryRequiresCredentials(t *testing.T) {
	os.Setenv("IMAGE_BACKEND", "cloudinary")
	os.Unsetenv("CLOUDINARY_CLOUD_NAME")
	os.Unsetenv("CLOUDINARY_API_KEY")
	os.Unsetenv("CLOUDINARY_API_SECRET")
	defer os.Unsetenv("IMAGE_BACKEND")

	_, err := LoadConfig()
	assert.Error(t, err)

	os.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	os.Setenv("CLOUDINARY_API_KEY", "key")
	os.Setenv("CLOUDINARY_API_SECRET", "secret")
	defer func() {
		os.Unsetenv("CLOUDINARY_CLOUD_NAME")
		os.Unsetenv("CLOUDINARY_API_KEY")
		os.Unsetenv("CLOUDINARY_API_SECRET")
	}()

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "cloudinary", cfg.ImageBackend)
	assert.Equal(t, "mealmate/meals", cfg.CloudinaryFolder)
}
