package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealmate/backend/internal/database"
	"github.com/mealmate/backend/internal/middleware"
	"github.com/mealmate/backend/internal/service"
)

// Deps carries the collaborators the handlers are wired with.
type Deps struct {
	DB                  *gorm.DB
	AuthService         service.IAuthService
	MealService         service.IMealService
	NotificationService service.INotificationService
	// Redis enables rate limiting when present. Nil disables it.
	Redis *redis.Client
}

// HealthCheck reports API health, including database reachability when
// a database is wired.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := database.HealthCheck(c.Request.Context(), db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "MealMate API is running",
			"version": "v1.0.0",
		})
	}
}

// SetupAPI registers all routes under /api/v1.
func SetupAPI(router *gin.Engine, deps Deps) {
	health := HealthCheck(deps.DB)
	router.GET("/health", health)
	router.GET("/api/health", health)

	var createLimiter, testLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		createLimiter = middleware.NewMealCreationRateLimiter(deps.Redis)
		testLimiter = middleware.NewTestReminderRateLimiter(deps.Redis)
	}

	v1 := router.Group("/api/v1")
	{
		authHandler := NewAuthHandler(deps.AuthService)
		mealHandler := NewMealHandler(deps.MealService, deps.AuthService, createLimiter)
		notificationHandler := NewNotificationHandler(deps.NotificationService, deps.AuthService, testLimiter)

		authHandler.RegisterRoutes(v1)
		mealHandler.RegisterRoutes(v1)
		notificationHandler.RegisterRoutes(v1)
	}
}
