package types

// CreateMealRequest represents the request body for creating a meal.
// Older clients send the meal name as "name", newer ones as "title";
// DisplayName resolves the two.
type CreateMealRequest struct {
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	CookingTime  int      `json:"cooking_time"`
	Servings     int      `json:"servings"`
	Calories     float64  `json:"calories"`
	MealType     string   `json:"meal_type"`
	Favorite     bool     `json:"favorite"`
	IsPlanned    bool     `json:"is_planned"`
	PlannedDate  string   `json:"planned_date"`
	ReminderTime string   `json:"reminder_time"`
}

// DisplayName picks the canonical name from the legacy title/name pair.
// When both are present and disagree, title wins.
func (r CreateMealRequest) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// UpdateMealRequest represents the request body for updating a meal.
// Pointer fields distinguish "not sent" from zero values so partial
// updates never clobber planning state.
type UpdateMealRequest struct {
	Title       *string   `json:"title"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Ingredients *[]string `json:"ingredients"`
	CookingTime *int      `json:"cooking_time"`
	Servings    *int      `json:"servings"`
	Calories    *float64  `json:"calories"`
	MealType    *string   `json:"meal_type"`
	IsPlanned   *bool     `json:"is_planned"`
	PlannedDate *string   `json:"planned_date"`
}

// DisplayName resolves the legacy title/name pair for updates. The
// second return value reports whether either field was sent at all.
func (r UpdateMealRequest) DisplayName() (string, bool) {
	if r.Title != nil && *r.Title != "" {
		return *r.Title, true
	}
	if r.Name != nil && *r.Name != "" {
		return *r.Name, true
	}
	return "", false
}

// PlanMealRequest plans an existing meal onto a (date, slot) pair by
// copying it into a fresh planned record.
type PlanMealRequest struct {
	SourceMealID string `json:"source_meal_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	MealType     string `json:"meal_type" binding:"required"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
