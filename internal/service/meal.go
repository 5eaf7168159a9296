package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealmate/backend/internal/model"
)

// MealService is the store adapter and the reconciliation point that
// keeps meal records and scheduled reminders consistent. Every write
// path runs persist-then-reminder-delta in that order, except delete,
// which cancels the reminder first so nothing can fire for a removed
// meal.
type MealService struct {
	db            *gorm.DB
	notifications INotificationService
	uploader      ImageUploader
}

// NewMealService creates a new MealService instance. The uploader may
// be nil when no image host is configured.
func NewMealService(db *gorm.DB, notifications INotificationService, uploader ImageUploader) *MealService {
	return &MealService{
		db:            db,
		notifications: notifications,
		uploader:      uploader,
	}
}

// resolveImage rewrites a device-local image reference to a hosted URL.
// Upload failure is tolerated: the original reference is kept and the
// failure logged, never surfaced to the caller.
func (s *MealService) resolveImage(ctx context.Context, uri string) string {
	if uri == "" || !IsLocalImage(uri) || s.uploader == nil {
		return uri
	}

	f, err := os.Open(strings.TrimPrefix(uri, "file://"))
	if err != nil {
		log.Printf("[MealService] cannot read local image %s: %v", uri, err)
		return uri
	}
	defer f.Close()

	name := "meal_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := s.uploader.UploadImage(ctx, f, name)
	if err != nil {
		log.Printf("[MealService] image upload failed, keeping original reference: %v", err)
		return uri
	}
	return url
}

// validatePlanning rejects incomplete planning state before it can
// reach the scheduler.
func validatePlanning(meal *model.Meal) error {
	if !meal.IsPlanned {
		return nil
	}
	if meal.PlannedDate == nil {
		return errors.New("planned meal requires a planned date")
	}
	if !meal.MealType.Valid() {
		return fmt.Errorf("planned meal requires a valid meal type, got %q", meal.MealType)
	}
	return nil
}

// CreateMeal persists a new meal and schedules its reminder when the
// resulting state is planned for the future. Scheduling problems never
// fail the create.
func (s *MealService) CreateMeal(ctx context.Context, meal *model.Meal) (*model.Meal, error) {
	if err := validatePlanning(meal); err != nil {
		return nil, err
	}

	meal.ImageURL = s.resolveImage(ctx, meal.ImageURL)
	if meal.Favorite == nil {
		favorite := false
		meal.Favorite = &favorite
	}

	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}

	if meal.Plannable() {
		if _, err := s.notifications.ScheduleMealNotification(ctx, meal); err != nil {
			log.Printf("[MealService] failed to schedule reminder for meal %s: %v", meal.ID, err)
		}
	}
	return meal, nil
}

// GetMeal retrieves a meal by ID.
func (s *MealService) GetMeal(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// planningKeys are the update-map keys whose presence requires a
// reminder reconciliation pass.
var planningKeys = []string{"is_planned", "planned_date", "meal_type"}

// UpdateMeal applies a partial update, then re-fetches the full record
// and reconciles the reminder against the new planning state: a
// planned-future meal gets a full reminder replace, anything else gets
// a cancel.
func (s *MealService) UpdateMeal(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Meal, error) {
	if img, ok := updates["image_url"].(string); ok {
		updates["image_url"] = s.resolveImage(ctx, img)
	}

	if err := s.db.WithContext(ctx).Model(&model.Meal{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	meal, err := s.GetMeal(ctx, id)
	if err != nil {
		return nil, err
	}

	touchesPlanning := false
	for _, key := range planningKeys {
		if _, ok := updates[key]; ok {
			touchesPlanning = true
			break
		}
	}
	if touchesPlanning {
		if meal.Plannable() {
			if _, err := s.notifications.UpdateMealNotification(ctx, meal); err != nil {
				log.Printf("[MealService] failed to update reminder for meal %s: %v", meal.ID, err)
			}
		} else {
			if err := s.notifications.CancelMealNotification(ctx, meal.ID.String()); err != nil {
				log.Printf("[MealService] failed to cancel reminder for meal %s: %v", meal.ID, err)
			}
		}
	}
	return meal, nil
}

// DeleteMeal cancels the meal's reminder and then removes the record.
// Cancellation runs first so a reminder can never outlive its meal;
// deleting an already-deleted meal is a no-op, not an error.
func (s *MealService) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	if err := s.notifications.CancelMealNotification(ctx, id.String()); err != nil {
		log.Printf("[MealService] failed to cancel reminders for meal %s: %v", id, err)
	}

	var meal model.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Meal{}, "id = ?", id).Error
}

// ToggleFavorite flips the favorite flag and returns the new value. It
// touches nothing else: favoriting is orthogonal to planning, so no
// reminder changes. Concurrent toggles are last-write-wins.
func (s *MealService) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	meal, err := s.GetMeal(ctx, id)
	if err != nil {
		return false, err
	}
	next := !meal.IsFavorite()
	if err := s.db.WithContext(ctx).Model(&model.Meal{}).Where("id = ?", id).Update("favorite", next).Error; err != nil {
		return false, err
	}
	return next, nil
}

// ListMeals lists all meals owned by a user.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	var meals []model.Meal
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// dayBounds returns the inclusive start and exclusive end instants of
// the calendar day in UTC, matching the noon-UTC pinning of planned
// dates.
func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ListPlannedMeals lists a user's planned meals, optionally narrowed to
// a calendar date range.
func (s *MealService) ListPlannedMeals(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]model.Meal, error) {
	query := s.db.WithContext(ctx).Where("user_id = ? AND is_planned = ?", userID, true)
	if start != nil {
		from, _ := dayBounds(*start)
		query = query.Where("planned_date >= ?", from)
	}
	if end != nil {
		_, to := dayBounds(*end)
		query = query.Where("planned_date < ?", to)
	}

	var meals []model.Meal
	if err := query.Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// FavoriteMeals lists the user's favorited meals. Requires the
// favorite backfill to have run, since NULL is not matchable as false.
func (s *MealService) FavoriteMeals(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	var meals []model.Meal
	if err := s.db.WithContext(ctx).Where("user_id = ? AND favorite = ?", userID, true).Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// MealsByTypeAndDate lists the planned meals in one (date, slot) cell.
func (s *MealService) MealsByTypeAndDate(ctx context.Context, userID uuid.UUID, mealType model.MealType, day time.Time) ([]model.Meal, error) {
	from, to := dayBounds(day)
	var meals []model.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND meal_type = ? AND planned_date >= ? AND planned_date < ?", userID, mealType, from, to).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// PlanExistingMeal copies a source meal's descriptive fields into a
// fresh planned record for the given (date, slot) pair. The source is
// never mutated, so one recipe can be planned onto any number of
// slots, each with an independent lifecycle and reminder.
func (s *MealService) PlanExistingMeal(ctx context.Context, userID, sourceID uuid.UUID, day time.Time, mealType model.MealType) (*model.Meal, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("invalid meal type %q", mealType)
	}

	source, err := s.GetMeal(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	planned := model.PinPlannedDate(day)
	favorite := false
	instance := &model.Meal{
		DisplayName: source.DisplayName,
		Description: source.Description,
		ImageURL:    source.ImageURL,
		Ingredients: source.Ingredients,
		CookingTime: source.CookingTime,
		Servings:    source.Servings,
		Calories:    source.Calories,
		MealType:    mealType,
		Favorite:    &favorite,
		IsPlanned:   true,
		PlannedDate: &planned,
		UserID:      userID,
	}
	return s.CreateMeal(ctx, instance)
}

// EnsureFavoriteField backfills favorite=false onto legacy records that
// lack the field. Idempotent: the second run matches nothing.
func (s *MealService) EnsureFavoriteField(ctx context.Context, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&model.Meal{}).
		Where("user_id = ? AND favorite IS NULL", userID).
		Update("favorite", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("[MealService] backfilled favorite field on %d meals for user %s", result.RowsAffected, userID)
	}
	return nil
}

// ScheduleNotificationsForPlannedMeals re-derives reminders for every
// planned meal of a user. Runs at startup; the replace path keeps the
// at-most-one-live-reminder invariant across restarts.
func (s *MealService) ScheduleNotificationsForPlannedMeals(ctx context.Context, userID uuid.UUID) error {
	meals, err := s.ListPlannedMeals(ctx, userID, nil, nil)
	if err != nil {
		return err
	}
	for i := range meals {
		if _, err := s.notifications.UpdateMealNotification(ctx, &meals[i]); err != nil {
			log.Printf("[MealService] failed to reschedule reminder for meal %s: %v", meals[i].ID, err)
		}
	}
	return nil
}
