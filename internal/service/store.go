package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dietlog/dietlog-go/internal/model"
)

// UserStore is the user persistence the services depend on.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByName(ctx context.Context, name string) (*model.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// MealStore is the meal persistence the services depend on. Every method is
// scoped to an owner id. *repository.MealRepository satisfies it.
type MealStore interface {
	Create(ctx context.Context, meal *model.Meal) error
	Update(ctx context.Context, userID uuid.UUID, currentName string, patch model.MealPatch) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID, name string) (int64, error)
	List(ctx context.Context, userID uuid.UUID, name string) ([]model.Meal, error)
}
