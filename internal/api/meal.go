package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealmate/backend/internal/middleware"
	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/planner"
	"github.com/mealmate/backend/internal/service"
	"github.com/mealmate/backend/internal/types"
)

type MealHandler struct {
	mealService   service.IMealService
	authService   service.IAuthService
	createLimiter *middleware.RateLimiter
}

func NewMealHandler(mealService service.IMealService, authService service.IAuthService, createLimiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{
		mealService:   mealService,
		authService:   authService,
		createLimiter: createLimiter,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals", middleware.AuthMiddleware(h.authService))
	{
		meals.GET("", h.ListMeals)
		if h.createLimiter != nil {
			meals.POST("", h.createLimiter.RateLimitMiddleware(), h.CreateMeal)
		} else {
			meals.POST("", h.CreateMeal)
		}
		meals.GET("/favorites", h.FavoriteMeals)
		meals.GET("/planned", h.ListPlannedMeals)
		meals.GET("/by-type", h.MealsByTypeAndDate)
		meals.POST("/plan", h.PlanMeal)
		meals.POST("/reschedule", h.RescheduleReminders)
		meals.GET("/week", h.WeekDates)
		meals.GET("/:id", h.GetMeal)
		meals.PUT("/:id", h.UpdateMeal)
		meals.DELETE("/:id", h.DeleteMeal)
		meals.POST("/:id/favorite", h.ToggleFavorite)
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

func mealIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return uuid.Nil, false
	}
	return id, true
}

// parsePlannedDate accepts either a bare calendar date or a full
// timestamp and pins the result to noon UTC of that day.
func parsePlannedDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return model.PinPlannedDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return model.PinPlannedDate(t), nil
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	meals, err := h.mealService.ListMeals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DisplayName() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal name is required"})
		return
	}

	favorite := req.Favorite
	meal := &model.Meal{
		DisplayName: req.DisplayName(),
		Description: req.Description,
		ImageURL:    req.Image,
		Ingredients: model.JSONBStringArray(req.Ingredients),
		CookingTime: req.CookingTime,
		Servings:    req.Servings,
		Calories:    req.Calories,
		MealType:    model.MealType(req.MealType),
		Favorite:    &favorite,
		IsPlanned:   req.IsPlanned,
		UserID:      userID,
	}
	if req.PlannedDate != "" {
		planned, err := parsePlannedDate(req.PlannedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		meal.PlannedDate = &planned
	}

	created, err := h.mealService.CreateMeal(c.Request.Context(), meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := mealIDParam(c)
	if !ok {
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), id)
	if err != nil || meal.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// UpdateMeal translates the sent fields into a column update map so an
// absent field never clobbers stored planning state.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := mealIDParam(c)
	if !ok {
		return
	}

	existing, err := h.mealService.GetMeal(c.Request.Context(), id)
	if err != nil || existing.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	var req types.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if name, ok := req.DisplayName(); ok {
		updates["display_name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image_url"] = *req.Image
	}
	if req.Ingredients != nil {
		updates["ingredients"] = model.JSONBStringArray(*req.Ingredients)
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.Calories != nil {
		updates["calories"] = *req.Calories
	}
	if req.MealType != nil {
		if !model.MealType(*req.MealType).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
			return
		}
		updates["meal_type"] = *req.MealType
	}
	if req.IsPlanned != nil {
		updates["is_planned"] = *req.IsPlanned
	}
	if req.PlannedDate != nil {
		if *req.PlannedDate == "" {
			updates["planned_date"] = nil
		} else {
			planned, err := parsePlannedDate(*req.PlannedDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["planned_date"] = planned
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, existing)
		return
	}

	meal, err := h.mealService.UpdateMeal(c.Request.Context(), id, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := mealIDParam(c)
	if !ok {
		return
	}

	if meal, err := h.mealService.GetMeal(c.Request.Context(), id); err == nil && meal.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	if err := h.mealService.DeleteMeal(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Meal deleted successfully",
		"id":      id.String(),
	})
}

func (h *MealHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := mealIDParam(c)
	if !ok {
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), id)
	if err != nil || meal.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	favorite, err := h.mealService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       id.String(),
		"favorite": favorite,
	})
}

func (h *MealHandler) FavoriteMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	meals, err := h.mealService.FavoriteMeals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorite meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) ListPlannedMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
			return
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
			return
		}
		end = &t
	}

	meals, err := h.mealService.ListPlannedMeals(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch planned meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) MealsByTypeAndDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealType := model.MealType(c.Query("type"))
	if !mealType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal type"})
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	meals, err := h.mealService.MealsByTypeAndDate(c.Request.Context(), userID, mealType, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) PlanMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.PlanMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sourceID, err := uuid.Parse(req.SourceMealID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source meal id"})
		return
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	source, err := h.mealService.GetMeal(c.Request.Context(), sourceID)
	if err != nil || source.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}

	meal, err := h.mealService.PlanExistingMeal(c.Request.Context(), userID, sourceID, day, model.MealType(req.MealType))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// RescheduleReminders re-derives reminders for every planned meal of
// the user. Clients call it after app restart or settings import.
func (h *MealHandler) RescheduleReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.mealService.ScheduleNotificationsForPlannedMeals(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminders rescheduled"})
}

// WeekDates returns the day strip the planner screen renders, each day
// carrying the meals planned on it.
func (h *MealHandler) WeekDates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start := time.Now()
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
			return
		}
		start = t
	}
	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 31 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days value"})
			return
		}
		days = n
	}

	end := start.AddDate(0, 0, days-1)
	snapshot, err := h.mealService.ListPlannedMeals(c.Request.Context(), userID, &start, &end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch planned meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": planner.WeekSchedule(snapshot, start, days)})
}
