package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mealmate/backend/config"
	"github.com/mealmate/backend/internal/database"
	"github.com/mealmate/backend/internal/model"
)

// Seeds a demo account with a few meals so a fresh install has
// something to render. Safe to rerun: existing records are skipped.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demopassword123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := model.User{
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	favorite := true
	notFavorite := false
	tomorrow := model.PinPlannedDate(time.Now().AddDate(0, 0, 1))

	meals := []model.Meal{
		{
			DisplayName: "Overnight Oats",
			Description: "Rolled oats soaked in milk with berries",
			Ingredients: model.JSONBStringArray{"rolled oats", "milk", "blueberries", "honey"},
			CookingTime: 5,
			Servings:    1,
			Calories:    350,
			MealType:    model.MealTypeBreakfast,
			Favorite:    &favorite,
			IsPlanned:   true,
			PlannedDate: &tomorrow,
			UserID:      user.ID,
		},
		{
			DisplayName: "Chicken Caesar Salad",
			Description: "Grilled chicken over romaine with caesar dressing",
			Ingredients: model.JSONBStringArray{"chicken breast", "romaine", "parmesan", "croutons"},
			CookingTime: 20,
			Servings:    2,
			Calories:    520,
			MealType:    model.MealTypeLunch,
			Favorite:    &notFavorite,
			UserID:      user.ID,
		},
		{
			DisplayName: "Spaghetti Bolognese",
			Description: "Classic beef ragu over spaghetti",
			Ingredients: model.JSONBStringArray{"spaghetti", "ground beef", "tomato sauce", "onion", "garlic"},
			CookingTime: 45,
			Servings:    4,
			Calories:    680,
			MealType:    model.MealTypeDinner,
			Favorite:    &favorite,
			UserID:      user.ID,
		},
	}

	for i := range meals {
		if err := db.Where("user_id = ? AND display_name = ?", user.ID, meals[i].DisplayName).
			FirstOrCreate(&meals[i]).Error; err != nil {
			log.Fatalf("Failed to seed meal %q: %v", meals[i].DisplayName, err)
		}
	}

	log.Printf("Seeded demo user %s with %d meals", user.Email, len(meals))
}
