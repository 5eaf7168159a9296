package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mealmate/backend/internal/model"
)

func snapshotMeal(mealType model.MealType, day time.Time) model.Meal {
	planned := model.PinPlannedDate(day)
	return model.Meal{
		DisplayName: string(mealType),
		MealType:    mealType,
		IsPlanned:   true,
		PlannedDate: &planned,
	}
}

func TestMealsForDate(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	snapshot := []model.Meal{
		snapshotMeal(model.MealTypeBreakfast, day),
		snapshotMeal(model.MealTypeDinner, day),
		snapshotMeal(model.MealTypeLunch, day.AddDate(0, 0, 1)),
		{DisplayName: "unplanned"},
	}

	got := MealsForDate(snapshot, day)
	assert.Len(t, got, 2)

	// Query time-of-day is irrelevant, only the calendar day matters
	got = MealsForDate(snapshot, time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC))
	assert.Len(t, got, 2)

	assert.Empty(t, MealsForDate(snapshot, day.AddDate(0, 0, 5)))
}

func TestMealsForDateAndType(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	snapshot := []model.Meal{
		snapshotMeal(model.MealTypeDinner, day),
		snapshotMeal(model.MealTypeDinner, day),
		snapshotMeal(model.MealTypeLunch, day),
	}

	assert.Len(t, MealsForDateAndType(snapshot, day, model.MealTypeDinner), 2)
	assert.Len(t, MealsForDateAndType(snapshot, day, model.MealTypeLunch), 1)
	assert.Empty(t, MealsForDateAndType(snapshot, day, model.MealTypeSnack))
}

func TestWeekDates(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC) // a Monday
	week := WeekDates(start, 7)

	assert.Len(t, week, 7)
	assert.Equal(t, "2025-03-10", week[0].Date)
	assert.Equal(t, "Mon", week[0].DayName)
	assert.Equal(t, 10, week[0].DayNumber)
	assert.True(t, week[0].IsToday)

	assert.Equal(t, "2025-03-16", week[6].Date)
	assert.Equal(t, "Sun", week[6].DayName)
	assert.False(t, week[6].IsToday)

	// Non-positive length falls back to a full week
	assert.Len(t, WeekDates(start, 0), 7)
	assert.Len(t, WeekDates(start, 3), 3)
}

func TestWeekSchedule(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	snapshot := []model.Meal{
		snapshotMeal(model.MealTypeBreakfast, start),
		snapshotMeal(model.MealTypeDinner, start.AddDate(0, 0, 2)),
		snapshotMeal(model.MealTypeLunch, start.AddDate(0, 0, 9)), // outside the week
	}

	week := WeekSchedule(snapshot, start, 7)
	assert.Len(t, week, 7)

	assert.Equal(t, "2025-03-10", week[0].Date)
	assert.Len(t, week[0].Meals, 1)
	assert.Equal(t, model.MealTypeBreakfast, week[0].Meals[0].MealType)

	assert.Len(t, week[2].Meals, 1)
	assert.Equal(t, model.MealTypeDinner, week[2].Meals[0].MealType)

	assert.Empty(t, week[1].Meals)
	assert.Empty(t, week[6].Meals)
}
