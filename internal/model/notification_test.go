package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultNotificationSettings(t *testing.T) {
	s := DefaultNotificationSettings()
	assert.True(t, s.Enabled)
	assert.True(t, s.PlanningReminders)

	assert.Equal(t, MealTypeSetting{Enabled: true, Time: "08:00"}, s.Breakfast)
	assert.Equal(t, MealTypeSetting{Enabled: true, Time: "12:00"}, s.Lunch)
	assert.Equal(t, MealTypeSetting{Enabled: true, Time: "18:00"}, s.Dinner)
	assert.Equal(t, MealTypeSetting{Enabled: false, Time: "15:00"}, s.Snack)
}

func TestForType(t *testing.T) {
	s := DefaultNotificationSettings()
	assert.Equal(t, s.Breakfast, s.ForType(MealTypeBreakfast))
	assert.Equal(t, s.Snack, s.ForType(MealTypeSnack))
	assert.Equal(t, MealTypeSetting{}, s.ForType("brunch"))
}

func TestPlanningClock(t *testing.T) {
	s := DefaultNotificationSettings()
	assert.Equal(t, "18:00", s.PlanningClock(MealTypeDinner))

	s.PlanningTimes = map[MealType]string{MealTypeDinner: "20:00"}
	assert.Equal(t, "20:00", s.PlanningClock(MealTypeDinner))
	// Other types still fall back to the default table
	assert.Equal(t, "12:00", s.PlanningClock(MealTypeLunch))
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("08:30")
	assert.NoError(t, err)
	assert.Equal(t, 8, hour)
	assert.Equal(t, 30, minute)

	for _, bad := range []string{"", "8", "25:00", "12:60", "ab:cd", "12:00 PM", "08:30:59", " 08:30"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "%q", bad)
	}
}
