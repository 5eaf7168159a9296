package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMealTypeValid(t *testing.T) {
	for _, mt := range MealTypes {
		assert.True(t, mt.Valid(), "%s", mt)
	}
	assert.False(t, MealType("brunch").Valid())
	assert.False(t, MealType("").Valid())
}

func TestPinPlannedDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// Late evening in a western timezone still pins to that calendar day
	late := time.Date(2025, 3, 10, 23, 45, 0, 0, loc)
	pinned := PinPlannedDate(late)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), pinned)
}

func TestPlannable(t *testing.T) {
	planned := PinPlannedDate(time.Now())

	m := Meal{IsPlanned: true, PlannedDate: &planned, MealType: MealTypeDinner}
	assert.True(t, m.Plannable())

	assert.False(t, (&Meal{IsPlanned: false, PlannedDate: &planned, MealType: MealTypeDinner}).Plannable())
	assert.False(t, (&Meal{IsPlanned: true, MealType: MealTypeDinner}).Plannable())
	assert.False(t, (&Meal{IsPlanned: true, PlannedDate: &planned, MealType: "brunch"}).Plannable())
}

func TestIsFavorite(t *testing.T) {
	yes, no := true, false
	assert.True(t, (&Meal{Favorite: &yes}).IsFavorite())
	assert.False(t, (&Meal{Favorite: &no}).IsFavorite())
	// Missing column reads as false
	assert.False(t, (&Meal{}).IsFavorite())
}

func TestPlannedDay(t *testing.T) {
	m := Meal{}
	_, ok := m.PlannedDay()
	assert.False(t, ok)

	planned := PinPlannedDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	m.PlannedDate = &planned
	day, ok := m.PlannedDay()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), day)
}
