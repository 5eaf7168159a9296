package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/types"
)

// INotificationService is the scheduler contract the meal reconciler
// depends on.
type INotificationService interface {
	ScheduleMealNotification(ctx context.Context, meal *model.Meal) (string, error)
	UpdateMealNotification(ctx context.Context, meal *model.Meal) (string, error)
	CancelMealNotification(ctx context.Context, mealID string) error
	CancelAllMealNotifications(ctx context.Context) error
	SchedulePlanningReminders(ctx context.Context) error
	CancelPlanningReminders(ctx context.Context) error
	MealReminders(ctx context.Context, mealID string) ([]model.ScheduledReminder, error)
	SendTestPlanningReminder(ctx context.Context, t model.MealType) error
	Settings(ctx context.Context) (model.NotificationSettings, error)
	SaveSettings(ctx context.Context, settings model.NotificationSettings) error
}

// IMealService defines the meal store and reconciliation operations.
type IMealService interface {
	CreateMeal(ctx context.Context, meal *model.Meal) (*model.Meal, error)
	GetMeal(ctx context.Context, id uuid.UUID) (*model.Meal, error)
	UpdateMeal(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Meal, error)
	DeleteMeal(ctx context.Context, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error)
	ListMeals(ctx context.Context, userID uuid.UUID) ([]model.Meal, error)
	ListPlannedMeals(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]model.Meal, error)
	FavoriteMeals(ctx context.Context, userID uuid.UUID) ([]model.Meal, error)
	MealsByTypeAndDate(ctx context.Context, userID uuid.UUID, mealType model.MealType, day time.Time) ([]model.Meal, error)
	PlanExistingMeal(ctx context.Context, userID, sourceID uuid.UUID, day time.Time, mealType model.MealType) (*model.Meal, error)
	EnsureFavoriteField(ctx context.Context, userID uuid.UUID) error
	ScheduleNotificationsForPlannedMeals(ctx context.Context, userID uuid.UUID) error
}

// IAuthService defines the interface for authentication operations.
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ImageUploader pushes image bytes to the hosting collaborator and
// returns the hosted URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, name string) (string, error)
}
