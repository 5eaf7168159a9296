package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealmate/backend/internal/middleware"
	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/service"
)

type NotificationHandler struct {
	notificationService service.INotificationService
	authService         service.IAuthService
	testLimiter         *middleware.RateLimiter
}

func NewNotificationHandler(notificationService service.INotificationService, authService service.IAuthService, testLimiter *middleware.RateLimiter) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authService:         authService,
		testLimiter:         testLimiter,
	}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications", middleware.AuthMiddleware(h.authService))
	{
		notifications.GET("/settings", h.GetSettings)
		notifications.PUT("/settings", h.SaveSettings)
		notifications.GET("/meals/:id", h.MealReminders)
		notifications.DELETE("", h.CancelAll)
		if h.testLimiter != nil {
			notifications.POST("/test", h.testLimiter.RateLimitMiddleware(), h.SendTestReminder)
		} else {
			notifications.POST("/test", h.SendTestReminder)
		}
	}
}

func (h *NotificationHandler) GetSettings(c *gin.Context) {
	settings, err := h.notificationService.Settings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings persists new settings. Disabling notifications cancels
// everything scheduled; the side effects happen inside the service.
func (h *NotificationHandler) SaveSettings(c *gin.Context) {
	var settings model.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for t, clock := range settings.PlanningTimes {
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type in planning times"})
			return
		}
		if _, _, err := model.ParseClock(clock); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	for _, setting := range []model.MealTypeSetting{settings.Breakfast, settings.Lunch, settings.Dinner, settings.Snack} {
		if setting.Time == "" {
			continue
		}
		if _, _, err := model.ParseClock(setting.Time); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.notificationService.SaveSettings(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notification settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *NotificationHandler) MealReminders(c *gin.Context) {
	reminders, err := h.notificationService.MealReminders(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (h *NotificationHandler) CancelAll(c *gin.Context) {
	if err := h.notificationService.CancelAllMealNotifications(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All reminders cancelled"})
}

// SendTestReminder fires an immediate planning nudge so users can
// verify delivery works on their device.
func (h *NotificationHandler) SendTestReminder(c *gin.Context) {
	mealType := model.MealType(c.DefaultQuery("type", string(model.MealTypeDinner)))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}

	if err := h.notificationService.SendTestPlanningReminder(c.Request.Context(), mealType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test reminder sent"})
}
