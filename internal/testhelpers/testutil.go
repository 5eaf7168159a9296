package testhelpers

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/types"
)

// CreateTestUser creates a test user in the database
func CreateTestUser(t *testing.T, db *gorm.DB) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &model.User{
		Username:     fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		Email:        fmt.Sprintf("testuser+%s@example.com", uuid.New().String()[:8]),
		PasswordHash: string(hash),
	}
	err = db.Create(user).Error
	assert.NoError(t, err)
	return user
}

// CreateTestMeal creates an unplanned meal owned by the user.
func CreateTestMeal(t *testing.T, db *gorm.DB, userID uuid.UUID) *model.Meal {
	favorite := false
	meal := &model.Meal{
		DisplayName: "Test Meal",
		Description: "A test meal",
		Ingredients: model.JSONBStringArray{"ingredient1", "ingredient2"},
		CookingTime: 15,
		Servings:    2,
		Calories:    400,
		MealType:    model.MealTypeLunch,
		Favorite:    &favorite,
		UserID:      userID,
	}
	err := db.Create(meal).Error
	assert.NoError(t, err)
	return meal
}

// CreateTestPlannedMeal creates a meal planned for the given day.
func CreateTestPlannedMeal(t *testing.T, db *gorm.DB, userID uuid.UUID, day time.Time, mealType model.MealType) *model.Meal {
	favorite := false
	planned := model.PinPlannedDate(day)
	meal := &model.Meal{
		DisplayName: fmt.Sprintf("Planned %s", mealType),
		Ingredients: model.JSONBStringArray{"ingredient1"},
		MealType:    mealType,
		Favorite:    &favorite,
		IsPlanned:   true,
		PlannedDate: &planned,
		UserID:      userID,
	}
	err := db.Create(meal).Error
	assert.NoError(t, err)
	return meal
}

// MockTokenValidator is a mock token validator for testing
type MockTokenValidator struct {
	Claims *types.TokenClaims
	Error  error
}

// ValidateToken validates a token and returns claims
func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Claims, nil
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
