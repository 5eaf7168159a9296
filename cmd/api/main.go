package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"github.com/mealmate/backend/config"
	"github.com/mealmate/backend/internal/database"
	"github.com/mealmate/backend/internal/localstore"
	"github.com/mealmate/backend/internal/notify"
	"github.com/mealmate/backend/internal/server"
	"github.com/mealmate/backend/internal/service"
)

func buildUploader(cfg *config.Config) service.ImageUploader {
	switch cfg.ImageBackend {
	case "cloudinary":
		uploader, err := service.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatalf("Failed to configure Cloudinary: %v", err)
		}
		return uploader
	case "s3":
		s3cfg, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Fatalf("Failed to configure S3: %v", err)
		}
		return service.NewS3Uploader(s3cfg, "meal-images")
	default:
		return nil
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	opts := server.Options{Uploader: buildUploader(cfg)}

	// Redis backs the reminder store, the delivery queue and rate
	// limiting. Without it the server still runs, with in-process
	// substitutes and no scheduled delivery.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, reminders run in-process only: %v", err)
	} else {
		redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL for task queue: %v", err)
		}

		opts.Redis = redisClient
		opts.Store = localstore.NewRedisStore(redisClient, "mealmate")
		opts.Facility = notify.NewAsynqFacility(redisOpt, cfg.ReminderQueue)

		stopWorker, err := notify.StartDeliveryWorker(redisOpt, cfg.ReminderQueue, notify.LogDelivery)
		if err != nil {
			log.Fatalf("Failed to start reminder delivery worker: %v", err)
		}
		defer stopWorker()
	}

	// Create and start server
	srv := server.New(cfg, db, opts)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
