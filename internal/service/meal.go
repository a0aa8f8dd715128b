package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dietlog/dietlog-go/internal/diet"
	"github.com/dietlog/dietlog-go/internal/model"
)

var (
	ErrMealNameRequired = errors.New("meal name is required")
	ErrMealNotFound     = errors.New("meal not found")
)

// MealService handles meal business logic. Every call is scoped to the
// authenticated user's id.
type MealService struct {
	meals MealStore
	now   func() time.Time
}

// NewMealService creates a new MealService.
func NewMealService(meals MealStore) *MealService {
	return &MealService{meals: meals, now: time.Now}
}

// CreateMeal records a new meal for userID. Names need not be unique.
func (s *MealService) CreateMeal(ctx context.Context, userID uuid.UUID, req model.CreateMealRequest) (model.CreateMealResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.CreateMealResponse{}, ErrMealNameRequired
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.CreateMealResponse{}, fmt.Errorf("generate meal id: %w", err)
	}

	meal := &model.Meal{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   s.now().UTC(),
		IsOnDiet:    req.IsOnDiet,
	}

	if err := s.meals.Create(ctx, meal); err != nil {
		return model.CreateMealResponse{}, err
	}

	return model.CreateMealResponse{ID: meal.ID}, nil
}

// UpdateMeal applies patch to every meal of userID named currentName.
// Matching nothing is not an error.
func (s *MealService) UpdateMeal(ctx context.Context, userID uuid.UUID, currentName string, patch model.MealPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrMealNameRequired
	}

	n, err := s.meals.Update(ctx, userID, currentName, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		slog.DebugContext(ctx, "meal update matched no rows", "user_id", userID, "name", currentName)
	}

	return nil
}

// DeleteMeal removes every meal of userID named name.
func (s *MealService) DeleteMeal(ctx context.Context, userID uuid.UUID, name string) error {
	n, err := s.meals.Delete(ctx, userID, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMealNotFound
	}

	return nil
}

// ListMeals returns the meals of userID in creation order, optionally limited
// to an exact name.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, name string) (model.MealListResponse, error) {
	meals, err := s.meals.List(ctx, userID, name)
	if err != nil {
		return model.MealListResponse{}, err
	}
	if meals == nil {
		meals = []model.Meal{}
	}

	return model.MealListResponse{Meals: meals}, nil
}

// Metrics summarises the full meal history of userID.
func (s *MealService) Metrics(ctx context.Context, userID uuid.UUID) (model.Metrics, error) {
	meals, err := s.meals.List(ctx, userID, "")
	if err != nil {
		return model.Metrics{}, err
	}

	return diet.ComputeMetrics(meals), nil
}
