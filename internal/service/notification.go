package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mealmate/backend/internal/localstore"
	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/notify"
)

var mealEmojis = map[model.MealType]string{
	model.MealTypeBreakfast: "🍳",
	model.MealTypeLunch:     "🍽️",
	model.MealTypeDinner:    "🍝",
	model.MealTypeSnack:     "🍎",
}

var titleCaser = cases.Title(language.English)

// NotificationService translates meal-planning intent into scheduled
// local reminders and keeps the mealID→handle index consistent. The
// index is read-modify-written as a whole under mu; the facility may be
// unavailable, in which case scheduling silently no-ops.
type NotificationService struct {
	facility notify.Facility
	store    localstore.Store
	mu       sync.Mutex
	now      func() time.Time
	loc      *time.Location
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(facility notify.Facility, store localstore.Store) *NotificationService {
	return &NotificationService{
		facility: facility,
		store:    store,
		now:      time.Now,
		loc:      time.Local,
	}
}

// Settings loads the notification settings, falling back to defaults
// when none have been saved yet.
func (s *NotificationService) Settings(ctx context.Context) (model.NotificationSettings, error) {
	var settings model.NotificationSettings
	found, err := s.store.Get(ctx, localstore.KeyNotificationSettings, &settings)
	if err != nil {
		return model.NotificationSettings{}, fmt.Errorf("failed to load notification settings: %w", err)
	}
	if !found {
		return model.DefaultNotificationSettings(), nil
	}
	return settings, nil
}

// SaveSettings persists the settings and reconciles scheduled state:
// globally disabling notifications clears every reminder, any other
// change re-derives the planning reminders.
func (s *NotificationService) SaveSettings(ctx context.Context, settings model.NotificationSettings) error {
	if err := s.store.Set(ctx, localstore.KeyNotificationSettings, settings); err != nil {
		return fmt.Errorf("failed to save notification settings: %w", err)
	}
	if !settings.Enabled {
		return s.CancelAllMealNotifications(ctx)
	}
	return s.SchedulePlanningReminders(ctx)
}

// reminderInstant computes the absolute trigger time: the calendar day
// of the planned date combined with the HH:MM wall clock in the
// service's location. Planned dates are pinned to noon UTC, so the UTC
// date portion is the intended calendar day.
func (s *NotificationService) reminderInstant(meal *model.Meal, clock string) time.Time {
	hour, minute, err := model.ParseClock(clock)
	if err != nil {
		log.Printf("[NotificationService] %v, using default for %s", err, meal.MealType)
		hour, minute, _ = model.ParseClock(model.DefaultReminderTimes[meal.MealType])
	}
	day := meal.PlannedDate.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, s.loc)
}

// ScheduleMealNotification schedules the reminder for a planned meal.
// Returns the new handle, or "" when nothing was scheduled: reminders
// disabled, planning fields incomplete, trigger instant already past,
// or no delivery capability. None of those are errors.
func (s *NotificationService) ScheduleMealNotification(ctx context.Context, meal *model.Meal) (string, error) {
	if !meal.Plannable() {
		return "", nil
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return "", err
	}
	if !settings.Enabled {
		return "", nil
	}
	typeSettings := settings.ForType(meal.MealType)
	if !typeSettings.Enabled {
		return "", nil
	}

	clock := typeSettings.Time
	if clock == "" {
		clock = model.DefaultReminderTimes[meal.MealType]
	}

	at := s.reminderInstant(meal, clock)
	if !at.After(s.now()) {
		log.Printf("[NotificationService] not scheduling past reminder for meal %s at %s", meal.ID, at)
		return "", nil
	}

	content := notify.Content{
		Title: fmt.Sprintf("%s Meal Reminder", mealEmojis[meal.MealType]),
		Body:  fmt.Sprintf("Time for %s: %s", meal.MealType, meal.DisplayName),
		Data: map[string]string{
			"meal_id":   meal.ID.String(),
			"meal_type": string(meal.MealType),
			"screen":    "meal-detail",
		},
	}

	handle, err := s.facility.Schedule(ctx, content, at)
	if err != nil {
		if errors.Is(err, notify.ErrUnavailable) {
			log.Printf("[NotificationService] facility unavailable, skipping reminder for meal %s", meal.ID)
			return "", nil
		}
		return "", fmt.Errorf("failed to schedule reminder for meal %s: %w", meal.ID, err)
	}

	reminder := model.ScheduledReminder{
		ID:            fmt.Sprintf("%s_%d", meal.ID, s.now().UnixNano()),
		MealID:        meal.ID.String(),
		Title:         meal.DisplayName,
		MealType:      meal.MealType,
		ScheduledTime: at,
		Handle:        handle,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var index []model.ScheduledReminder
	if _, err := s.store.Get(ctx, localstore.KeyMealNotifications, &index); err != nil {
		return "", fmt.Errorf("failed to read reminder index: %w", err)
	}
	index = append(index, reminder)
	if err := s.store.Set(ctx, localstore.KeyMealNotifications, index); err != nil {
		return "", fmt.Errorf("failed to write reminder index: %w", err)
	}

	log.Printf("[NotificationService] scheduled %s reminder for meal %s at %s", meal.MealType, meal.ID, at)
	return handle, nil
}

// CancelMealNotification cancels every reminder held for the meal and
// drops its index entries. Handles the facility no longer recognizes
// count as already cancelled.
func (s *NotificationService) CancelMealNotification(ctx context.Context, mealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var index []model.ScheduledReminder
	if _, err := s.store.Get(ctx, localstore.KeyMealNotifications, &index); err != nil {
		return fmt.Errorf("failed to read reminder index: %w", err)
	}

	remaining := index[:0]
	for _, reminder := range index {
		if reminder.MealID != mealID {
			remaining = append(remaining, reminder)
			continue
		}
		if err := s.facility.Cancel(ctx, reminder.Handle); err != nil {
			log.Printf("[NotificationService] failed to cancel handle %s: %v", reminder.Handle, err)
		}
	}

	if err := s.store.Set(ctx, localstore.KeyMealNotifications, remaining); err != nil {
		return fmt.Errorf("failed to write reminder index: %w", err)
	}
	return nil
}

// UpdateMealNotification replaces the meal's reminder wholesale:
// cancel whatever is scheduled, then schedule from the current planning
// fields. There is no in-place reschedule path.
func (s *NotificationService) UpdateMealNotification(ctx context.Context, meal *model.Meal) (string, error) {
	if err := s.CancelMealNotification(ctx, meal.ID.String()); err != nil {
		return "", err
	}
	return s.ScheduleMealNotification(ctx, meal)
}

// CancelAllMealNotifications clears every meal reminder and planning
// reminder along with both indexes.
func (s *NotificationService) CancelAllMealNotifications(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var index []model.ScheduledReminder
	if _, err := s.store.Get(ctx, localstore.KeyMealNotifications, &index); err != nil {
		return fmt.Errorf("failed to read reminder index: %w", err)
	}
	for _, reminder := range index {
		if err := s.facility.Cancel(ctx, reminder.Handle); err != nil {
			log.Printf("[NotificationService] failed to cancel handle %s: %v", reminder.Handle, err)
		}
	}
	if err := s.store.Delete(ctx, localstore.KeyMealNotifications); err != nil {
		return fmt.Errorf("failed to clear reminder index: %w", err)
	}

	if err := s.cancelPlanningRemindersLocked(ctx); err != nil {
		return err
	}

	log.Printf("[NotificationService] cancelled all reminders")
	return nil
}

// MealReminders returns the index entries currently held for a meal.
func (s *NotificationService) MealReminders(ctx context.Context, mealID string) ([]model.ScheduledReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var index []model.ScheduledReminder
	if _, err := s.store.Get(ctx, localstore.KeyMealNotifications, &index); err != nil {
		return nil, fmt.Errorf("failed to read reminder index: %w", err)
	}
	var out []model.ScheduledReminder
	for _, reminder := range index {
		if reminder.MealID == mealID {
			out = append(out, reminder)
		}
	}
	return out, nil
}

// planningContent builds the daily nudge payload for one meal type.
func planningContent(t model.MealType) notify.Content {
	name := titleCaser.String(string(t))
	return notify.Content{
		Title: fmt.Sprintf("%s Plan Your %s", mealEmojis[t], name),
		Body:  fmt.Sprintf("Time to plan your %s for tomorrow! Tap to open Meal Mate and add a meal.", t),
		Data: map[string]string{
			"screen":    "plan",
			"meal_type": string(t),
		},
	}
}

// SchedulePlanningReminders derives the four daily planning nudges from
// the current settings: 30 minutes before each enabled type's mealtime,
// against tomorrow's date. Existing nudges are always cancelled first.
func (s *NotificationService) SchedulePlanningReminders(ctx context.Context) error {
	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cancelPlanningRemindersLocked(ctx); err != nil {
		return err
	}
	if !settings.Enabled || !settings.PlanningReminders {
		return nil
	}

	index := make(map[model.MealType]string)
	now := s.now().In(s.loc)
	for _, t := range model.MealTypes {
		if !settings.ForType(t).Enabled {
			continue
		}
		hour, minute, err := model.ParseClock(settings.PlanningClock(t))
		if err != nil {
			log.Printf("[NotificationService] %v, skipping planning reminder for %s", err, t)
			continue
		}
		tomorrow := now.AddDate(0, 0, 1)
		at := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, s.loc).
			Add(-30 * time.Minute)

		handle, err := s.facility.Schedule(ctx, planningContent(t), at)
		if err != nil {
			if errors.Is(err, notify.ErrUnavailable) {
				return nil
			}
			return fmt.Errorf("failed to schedule %s planning reminder: %w", t, err)
		}
		index[t] = handle
		log.Printf("[NotificationService] scheduled %s planning reminder for %s", t, at)
	}

	if len(index) == 0 {
		return nil
	}
	if err := s.store.Set(ctx, localstore.KeyPlanningReminders, index); err != nil {
		return fmt.Errorf("failed to write planning reminder index: %w", err)
	}
	return nil
}

// CancelPlanningReminders cancels the daily nudges and clears their
// index.
func (s *NotificationService) CancelPlanningReminders(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelPlanningRemindersLocked(ctx)
}

func (s *NotificationService) cancelPlanningRemindersLocked(ctx context.Context) error {
	var index map[model.MealType]string
	if _, err := s.store.Get(ctx, localstore.KeyPlanningReminders, &index); err != nil {
		return fmt.Errorf("failed to read planning reminder index: %w", err)
	}
	for t, handle := range index {
		if err := s.facility.Cancel(ctx, handle); err != nil {
			log.Printf("[NotificationService] failed to cancel %s planning reminder: %v", t, err)
		}
	}
	if err := s.store.Delete(ctx, localstore.KeyPlanningReminders); err != nil {
		return fmt.Errorf("failed to clear planning reminder index: %w", err)
	}
	return nil
}

// SendTestPlanningReminder fires an immediate nudge for one meal type,
// bypassing the indexes. Used from the settings screen.
func (s *NotificationService) SendTestPlanningReminder(ctx context.Context, t model.MealType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid meal type %q", t)
	}
	content := planningContent(t)
	content.Body = fmt.Sprintf("Time to plan your %s! Tap to open Meal Mate and add a meal.", t)
	if _, err := s.facility.Schedule(ctx, content, s.now()); err != nil && !errors.Is(err, notify.ErrUnavailable) {
		return fmt.Errorf("failed to send test planning reminder: %w", err)
	}
	return nil
}
