package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealmate/backend/config"
	"github.com/mealmate/backend/internal/api"
	"github.com/mealmate/backend/internal/localstore"
	"github.com/mealmate/backend/internal/notify"
	"github.com/mealmate/backend/internal/router"
	"github.com/mealmate/backend/internal/service"
)

// Options carries the optional production collaborators. Zero values
// fall back to in-process substitutes so the server runs standalone.
type Options struct {
	// Store persists reminder indexes and settings. Defaults to an
	// in-memory store.
	Store localstore.Store
	// Facility delivers reminders. Defaults to the no-op facility,
	// which reports itself unavailable.
	Facility notify.Facility
	// Redis enables rate limiting when present.
	Redis *redis.Client
	// Uploader hosts meal images. Nil keeps local references as-is.
	Uploader service.ImageUploader
}

// Server represents the HTTP server
type Server struct {
	router        *gin.Engine
	http          *http.Server
	db            *gorm.DB
	auth          *service.AuthService
	meals         *service.MealService
	notifications *service.NotificationService
}

// New creates a new server instance
func New(cfg *config.Config, db *gorm.DB, opts ...Options) *Server {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Store == nil {
		o.Store = localstore.NewMemoryStore()
	}
	if o.Facility == nil {
		o.Facility = notify.Noop{}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	notificationService := service.NewNotificationService(o.Facility, o.Store)
	mealService := service.NewMealService(db, notificationService, o.Uploader)

	// Planning nudges are derived state: re-create tomorrow's set on
	// every process start, the same as after a settings change.
	if err := notificationService.SchedulePlanningReminders(context.Background()); err != nil {
		log.Printf("[Server] failed to schedule planning reminders: %v", err)
	}

	r := router.SetupRouter(api.Deps{
		DB:                  db,
		AuthService:         authService,
		MealService:         mealService,
		NotificationService: notificationService,
		Redis:               o.Redis,
	})

	return &Server{
		router:        r,
		db:            db,
		auth:          authService,
		meals:         mealService,
		notifications: notificationService,
	}
}

// Start starts the server and blocks until an interrupt signal.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.http.Shutdown(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
