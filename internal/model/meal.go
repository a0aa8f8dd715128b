package model

import (
	"time"

	"github.com/google/uuid"
)

// Meal is a logged food entry owned by a single user.
// Description and IsOnDiet are nullable columns.
type Meal struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"userId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	IsOnDiet    *bool     `db:"is_on_diet" json:"isOnDiet"`
}

// OnDiet reports whether the meal is flagged as on-diet. A missing flag counts as off-diet.
func (m Meal) OnDiet() bool {
	return m.IsOnDiet != nil && *m.IsOnDiet
}

// CreateMealRequest represents a meal creation request.
type CreateMealRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsOnDiet    *bool   `json:"isOnDiet"`
}

// CreateMealResponse carries the id of a newly created meal.
type CreateMealResponse struct {
	ID uuid.UUID `json:"id"`
}

// MealPatch is a partial meal update. Nil fields are left untouched.
type MealPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsOnDiet    *bool   `json:"isOnDiet"`
}

// Empty reports whether the patch changes nothing.
func (p MealPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.IsOnDiet == nil
}

// MealListResponse wraps a list of meals.
type MealListResponse struct {
	Meals []Meal `json:"meals"`
}

// Metrics summarises a user's meal history.
type Metrics struct {
	TotalMeals          int    `json:"totalMeals"`
	TotalMealsOnDiet    int    `json:"totalMealsOnDiet"`
	TotalMealsOutDiet   int    `json:"totalMealsOutDiet"`
	LongestOnDietStreak []Meal `json:"longestOnDietStreak"`
}
