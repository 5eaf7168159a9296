package model

import (
	"fmt"
	"time"
)

// DefaultReminderTimes maps each meal type to its default wall-clock
// reminder time when the user has not configured one.
var DefaultReminderTimes = map[MealType]string{
	MealTypeBreakfast: "08:00",
	MealTypeLunch:     "12:00",
	MealTypeDinner:    "18:00",
	MealTypeSnack:     "15:00",
}

// ScheduledReminder records one reminder handed to the notification
// facility. It is derived state, local to this process's store, and is
// never written to the meal database.
type ScheduledReminder struct {
	ID            string    `json:"id"`
	MealID        string    `json:"meal_id"`
	Title         string    `json:"title"`
	MealType      MealType  `json:"meal_type"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Handle        string    `json:"handle"`
}

// MealTypeSetting controls reminders for one meal type.
type MealTypeSetting struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

// NotificationSettings is the process-wide reminder configuration,
// persisted to the local store and read on every scheduling decision.
// PlanningReminders gates the meal-independent daily nudges; its times
// are deliberately kept separate from the per-type reminder times.
type NotificationSettings struct {
	Enabled           bool            `json:"enabled"`
	Breakfast         MealTypeSetting `json:"breakfast"`
	Lunch             MealTypeSetting `json:"lunch"`
	Dinner            MealTypeSetting `json:"dinner"`
	Snack             MealTypeSetting `json:"snack"`
	PlanningReminders bool            `json:"planning_reminders"`
	// PlanningTimes optionally overrides the mealtime each daily
	// planning nudge is anchored to. Configured independently from the
	// per-type reminder Time.
	PlanningTimes map[MealType]string `json:"planning_times,omitempty"`
}

// PlanningClock returns the mealtime the planning nudge for t is
// anchored to, falling back to the default table.
func (s NotificationSettings) PlanningClock(t MealType) string {
	if v, ok := s.PlanningTimes[t]; ok && v != "" {
		return v
	}
	return DefaultReminderTimes[t]
}

// DefaultNotificationSettings mirrors the defaults the mobile client
// ships with: everything on except snack reminders.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:           true,
		Breakfast:         MealTypeSetting{Enabled: true, Time: DefaultReminderTimes[MealTypeBreakfast]},
		Lunch:             MealTypeSetting{Enabled: true, Time: DefaultReminderTimes[MealTypeLunch]},
		Dinner:            MealTypeSetting{Enabled: true, Time: DefaultReminderTimes[MealTypeDinner]},
		Snack:             MealTypeSetting{Enabled: false, Time: DefaultReminderTimes[MealTypeSnack]},
		PlanningReminders: true,
	}
}

// ForType returns the setting block for the given meal type.
func (s NotificationSettings) ForType(t MealType) MealTypeSetting {
	switch t {
	case MealTypeBreakfast:
		return s.Breakfast
	case MealTypeLunch:
		return s.Lunch
	case MealTypeDinner:
		return s.Dinner
	case MealTypeSnack:
		return s.Snack
	}
	return MealTypeSetting{}
}

// ParseClock parses an "HH:MM" wall-clock string. The value must be
// exactly a 24-hour clock, nothing trailing.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}
