package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Development and test fall back to defaults, so
// only production-sensitive values and cross-field consistency are
// enforced here.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == "your-secret-key" {
			errors = append(errors, "JWT_SECRET must be set to a real secret in production")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	}

	switch cfg.ImageBackend {
	case "", "s3":
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			errors = append(errors, "CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required when IMAGE_BACKEND=cloudinary")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown IMAGE_BACKEND %q (expected cloudinary, s3 or empty)", cfg.ImageBackend))
	}

	if cfg.ReminderQueue == "" {
		errors = append(errors, "REMINDER_QUEUE must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
