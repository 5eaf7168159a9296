package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType classifies a meal into one of the four planner slots.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes lists the four slot types in planner order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

// Valid reports whether t is one of the four known meal types.
func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Meal is a recipe entry owned by a user, optionally planned onto a
// calendar date and slot. Legacy records may lack the favorite column
// (NULL), which the startup backfill rewrites to false.
type Meal struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	DisplayName string           `gorm:"size:255;not null" json:"display_name"`
	Description string           `gorm:"type:text" json:"description"`
	ImageURL    string           `gorm:"size:512" json:"image_url"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	CookingTime int              `json:"cooking_time"`
	Servings    int              `json:"servings"`
	Calories    float64          `gorm:"type:float" json:"calories"`
	MealType    MealType         `gorm:"size:20;default:'breakfast'" json:"meal_type"`
	Favorite    *bool            `gorm:"index" json:"favorite"`
	IsPlanned   bool             `gorm:"index" json:"is_planned"`
	PlannedDate *time.Time       `gorm:"index" json:"planned_date,omitempty"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
}

// BeforeCreate assigns an ID when the database has no uuid default
// (sqlite in tests).
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsFavorite treats a missing favorite column as false.
func (m *Meal) IsFavorite() bool {
	return m.Favorite != nil && *m.Favorite
}

// Plannable reports whether the meal carries a complete set of planning
// fields. A planned meal without a date or a valid type must never reach
// the notification scheduler.
func (m *Meal) Plannable() bool {
	return m.IsPlanned && m.PlannedDate != nil && m.MealType.Valid()
}

// PlannedDay returns the calendar date portion of PlannedDate.
func (m *Meal) PlannedDay() (time.Time, bool) {
	if m.PlannedDate == nil {
		return time.Time{}, false
	}
	y, mo, d := m.PlannedDate.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, m.PlannedDate.Location()), true
}

// PinPlannedDate pins a calendar day to the canonical noon-UTC instant
// used for every stored planned date, so date-only comparisons never
// straddle a timezone boundary.
func PinPlannedDate(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
}
