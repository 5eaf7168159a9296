package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealmate/backend/internal/localstore"
	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/notify"
)

func newTestNotificationService(facility notify.Facility) (*NotificationService, *localstore.MemoryStore) {
	store := localstore.NewMemoryStore()
	svc := NewNotificationService(facility, store)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	svc.loc = time.UTC
	return svc, store
}

func plannedMeal(t model.MealType, day time.Time) *model.Meal {
	planned := model.PinPlannedDate(day)
	return &model.Meal{
		ID:          uuid.New(),
		DisplayName: "Test Meal",
		MealType:    t,
		IsPlanned:   true,
		PlannedDate: &planned,
	}
}

func TestSettingsDefaults(t *testing.T) {
	svc, _ := newTestNotificationService(notify.NewMemoryFacility())

	settings, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	assert.True(t, settings.Breakfast.Enabled)
	assert.Equal(t, "08:00", settings.Breakfast.Time)
	assert.False(t, settings.Snack.Enabled)
	assert.True(t, settings.PlanningReminders)
}

func TestScheduleMealNotification(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	// Dinner tomorrow at the default 18:00
	meal := plannedMeal(model.MealTypeDinner, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	handle, err := svc.ScheduleMealNotification(ctx, meal)
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	entry, ok := facility.Entry(handle)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC), entry.At)
	assert.Equal(t, "🍝 Meal Reminder", entry.Content.Title)
	assert.Equal(t, meal.ID.String(), entry.Content.Data["meal_id"])

	reminders, err := svc.MealReminders(ctx, meal.ID.String())
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, handle, reminders[0].Handle)
	assert.Equal(t, model.MealTypeDinner, reminders[0].MealType)
}

func TestScheduleMealNotificationPastInstant(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)

	// Breakfast today fires at 08:00, which is already behind the 09:00
	// clock. Nothing gets scheduled and that is not an error.
	meal := plannedMeal(model.MealTypeBreakfast, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	handle, err := svc.ScheduleMealNotification(context.Background(), meal)
	require.NoError(t, err)
	assert.Empty(t, handle)

	handles, _ := facility.ListScheduled(context.Background())
	assert.Empty(t, handles)
}

func TestScheduleMealNotificationRespectsSettings(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	// Snack reminders are disabled by default
	meal := plannedMeal(model.MealTypeSnack, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	handle, err := svc.ScheduleMealNotification(ctx, meal)
	require.NoError(t, err)
	assert.Empty(t, handle)

	// Globally disabled blocks everything
	settings := model.DefaultNotificationSettings()
	settings.Enabled = false
	require.NoError(t, svc.SaveSettings(ctx, settings))

	dinner := plannedMeal(model.MealTypeDinner, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	handle, err = svc.ScheduleMealNotification(ctx, dinner)
	require.NoError(t, err)
	assert.Empty(t, handle)
}

func TestScheduleMealNotificationUnavailableFacility(t *testing.T) {
	svc, _ := newTestNotificationService(notify.Noop{})
	ctx := context.Background()

	meal := plannedMeal(model.MealTypeDinner, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	handle, err := svc.ScheduleMealNotification(ctx, meal)
	require.NoError(t, err)
	assert.Empty(t, handle)

	// Nothing recorded in the index either
	reminders, err := svc.MealReminders(ctx, meal.ID.String())
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestScheduleMealNotificationNotPlannable(t *testing.T) {
	svc, _ := newTestNotificationService(notify.NewMemoryFacility())

	meal := &model.Meal{ID: uuid.New(), DisplayName: "Unplanned", MealType: model.MealTypeLunch}
	handle, err := svc.ScheduleMealNotification(context.Background(), meal)
	require.NoError(t, err)
	assert.Empty(t, handle)
}

func TestCancelMealNotification(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	first := plannedMeal(model.MealTypeDinner, day)
	second := plannedMeal(model.MealTypeLunch, day)

	h1, err := svc.ScheduleMealNotification(ctx, first)
	require.NoError(t, err)
	_, err = svc.ScheduleMealNotification(ctx, second)
	require.NoError(t, err)

	require.NoError(t, svc.CancelMealNotification(ctx, first.ID.String()))

	// Cancelled handle is gone, the other meal's survives
	_, ok := facility.Entry(h1)
	assert.False(t, ok)
	handles, _ := facility.ListScheduled(ctx)
	assert.Len(t, handles, 1)

	reminders, err := svc.MealReminders(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Empty(t, reminders)
	reminders, err = svc.MealReminders(ctx, second.ID.String())
	require.NoError(t, err)
	assert.Len(t, reminders, 1)
}

func TestCancelMealNotificationUnknownMeal(t *testing.T) {
	svc, _ := newTestNotificationService(notify.NewMemoryFacility())
	assert.NoError(t, svc.CancelMealNotification(context.Background(), uuid.New().String()))
}

func TestUpdateMealNotificationReplaces(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	meal := plannedMeal(model.MealTypeDinner, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	h1, err := svc.ScheduleMealNotification(ctx, meal)
	require.NoError(t, err)

	// Move the plan a day later
	planned := model.PinPlannedDate(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	meal.PlannedDate = &planned

	h2, err := svc.UpdateMealNotification(ctx, meal)
	require.NoError(t, err)
	require.NotEmpty(t, h2)
	assert.NotEqual(t, h1, h2)

	// At most one live reminder per meal
	reminders, err := svc.MealReminders(ctx, meal.ID.String())
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, h2, reminders[0].Handle)

	entry, ok := facility.Entry(h2)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC), entry.At)
	_, ok = facility.Entry(h1)
	assert.False(t, ok)
}

func TestUpdateMealNotificationToUnplannable(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	meal := plannedMeal(model.MealTypeDinner, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	_, err := svc.ScheduleMealNotification(ctx, meal)
	require.NoError(t, err)

	// Unplanning cancels without scheduling a replacement
	meal.IsPlanned = false
	handle, err := svc.UpdateMealNotification(ctx, meal)
	require.NoError(t, err)
	assert.Empty(t, handle)

	handles, _ := facility.ListScheduled(ctx)
	assert.Empty(t, handles)
}

func TestCancelAllMealNotifications(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	_, err := svc.ScheduleMealNotification(ctx, plannedMeal(model.MealTypeDinner, day))
	require.NoError(t, err)
	require.NoError(t, svc.SchedulePlanningReminders(ctx))

	require.NoError(t, svc.CancelAllMealNotifications(ctx))

	handles, _ := facility.ListScheduled(ctx)
	assert.Empty(t, handles)
}

func TestSaveSettingsDisableCancelsEverything(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	_, err := svc.ScheduleMealNotification(ctx, plannedMeal(model.MealTypeDinner, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	settings := model.DefaultNotificationSettings()
	settings.Enabled = false
	require.NoError(t, svc.SaveSettings(ctx, settings))

	handles, _ := facility.ListScheduled(ctx)
	assert.Empty(t, handles)

	loaded, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Enabled)
}

func TestSchedulePlanningReminders(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	require.NoError(t, svc.SchedulePlanningReminders(ctx))

	// Breakfast, lunch and dinner are enabled by default; snack is not.
	handles, _ := facility.ListScheduled(ctx)
	require.Len(t, handles, 3)

	// Dinner nudge lands 30 minutes before tomorrow's 18:00
	var dinnerAt time.Time
	for _, h := range handles {
		entry, ok := facility.Entry(h)
		require.True(t, ok)
		if entry.Content.Data["meal_type"] == string(model.MealTypeDinner) {
			dinnerAt = entry.At
			assert.Equal(t, "🍝 Plan Your Dinner", entry.Content.Title)
		}
	}
	assert.Equal(t, time.Date(2025, 3, 11, 17, 30, 0, 0, time.UTC), dinnerAt)

	// Rescheduling replaces rather than stacks
	require.NoError(t, svc.SchedulePlanningReminders(ctx))
	handles, _ = facility.ListScheduled(ctx)
	assert.Len(t, handles, 3)
}

func TestSchedulePlanningRemindersDisabled(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	settings := model.DefaultNotificationSettings()
	settings.PlanningReminders = false
	require.NoError(t, svc.SaveSettings(ctx, settings))

	handles, _ := facility.ListScheduled(ctx)
	assert.Empty(t, handles)
}

func TestPlanningClockOverride(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	settings := model.DefaultNotificationSettings()
	settings.PlanningTimes = map[model.MealType]string{model.MealTypeDinner: "20:00"}
	require.NoError(t, svc.SaveSettings(ctx, settings))

	handles, _ := facility.ListScheduled(ctx)
	var found bool
	for _, h := range handles {
		entry, _ := facility.Entry(h)
		if entry.Content.Data["meal_type"] == string(model.MealTypeDinner) {
			found = true
			assert.Equal(t, time.Date(2025, 3, 11, 19, 30, 0, 0, time.UTC), entry.At)
		}
	}
	assert.True(t, found)
}

func TestSendTestPlanningReminder(t *testing.T) {
	facility := notify.NewMemoryFacility()
	svc, _ := newTestNotificationService(facility)
	ctx := context.Background()

	require.NoError(t, svc.SendTestPlanningReminder(ctx, model.MealTypeLunch))

	handles, _ := facility.ListScheduled(ctx)
	require.Len(t, handles, 1)
	entry, _ := facility.Entry(handles[0])
	assert.Equal(t, "🍽️ Plan Your Lunch", entry.Content.Title)

	// Invalid type is rejected
	assert.Error(t, svc.SendTestPlanningReminder(ctx, model.MealType("brunch")))
}

func TestSendTestPlanningReminderUnavailable(t *testing.T) {
	svc, _ := newTestNotificationService(notify.Noop{})
	assert.NoError(t, svc.SendTestPlanningReminder(context.Background(), model.MealTypeDinner))
}
