// Package planner answers "what is planned for date D and slot T" over
// an in-memory snapshot of a user's meals. It never touches storage;
// callers rebuild results whenever the snapshot or selected date
// changes.
package planner

import (
	"time"

	"github.com/mealmate/backend/internal/model"
)

// DayInfo describes one cell of the horizontal week picker.
type DayInfo struct {
	Date      string `json:"date"`
	DayName   string `json:"day_name"`
	DayNumber int    `json:"day_number"`
	IsToday   bool   `json:"is_today"`
}

// sameDay compares the calendar-day portions of two instants. Planned
// dates are pinned to a canonical time-of-day on write, so this matches
// exactly the meals planned within the given day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MealsForDate returns the planned meals from the snapshot whose
// planned date falls on the given calendar day.
func MealsForDate(snapshot []model.Meal, date time.Time) []model.Meal {
	var out []model.Meal
	for _, m := range snapshot {
		if m.PlannedDate != nil && sameDay(*m.PlannedDate, date) {
			out = append(out, m)
		}
	}
	return out
}

// MealsForDateAndType narrows MealsForDate to one slot.
func MealsForDateAndType(snapshot []model.Meal, date time.Time, mealType model.MealType) []model.Meal {
	var out []model.Meal
	for _, m := range MealsForDate(snapshot, date) {
		if m.MealType == mealType {
			out = append(out, m)
		}
	}
	return out
}

// DaySchedule pairs one picker day with the meals planned on it.
type DaySchedule struct {
	DayInfo
	Meals []model.Meal `json:"meals"`
}

// WeekSchedule expands WeekDates with the planned meals falling on each
// day, resolved against the snapshot.
func WeekSchedule(snapshot []model.Meal, start time.Time, length int) []DaySchedule {
	if length <= 0 {
		length = 7
	}
	days := WeekDates(start, length)
	out := make([]DaySchedule, 0, len(days))
	for i, day := range days {
		out = append(out, DaySchedule{
			DayInfo: day,
			Meals:   MealsForDate(snapshot, start.AddDate(0, 0, i)),
		})
	}
	return out
}

// WeekDates returns length consecutive days starting at start, shaped
// for the week picker. The first entry is flagged as today.
func WeekDates(start time.Time, length int) []DayInfo {
	if length <= 0 {
		length = 7
	}
	week := make([]DayInfo, 0, length)
	for i := 0; i < length; i++ {
		d := start.AddDate(0, 0, i)
		week = append(week, DayInfo{
			Date:      d.Format("2006-01-02"),
			DayName:   d.Format("Mon"),
			DayNumber: d.Day(),
			IsToday:   i == 0,
		})
	}
	return week
}
