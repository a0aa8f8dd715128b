package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dietlog/dietlog-go/internal/model"
)

const mealColumns = `id, user_id, name, description, created_at, is_on_diet`

// MealRepository handles meal persistence. Every statement is filtered by the
// owning user's id.
type MealRepository struct {
	db *sqlx.DB
}

// NewMealRepository creates a new MealRepository.
func NewMealRepository(db *sqlx.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Create inserts a meal. The caller assigns the id and creation time.
func (r *MealRepository) Create(ctx context.Context, meal *model.Meal) error {
	query := r.db.Rebind(`INSERT INTO meals (` + mealColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		meal.ID,
		meal.UserID,
		meal.Name,
		meal.Description,
		meal.CreatedAt,
		meal.IsOnDiet,
	)
	if err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}

	return nil
}

// Update applies patch to every meal of userID named currentName and returns
// the number of rows changed. An empty patch issues no statement.
func (r *MealRepository) Update(ctx context.Context, userID uuid.UUID, currentName string, patch model.MealPatch) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}

	var (
		sets []string
		args []any
	)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.IsOnDiet != nil {
		sets = append(sets, "is_on_diet = ?")
		args = append(args, *patch.IsOnDiet)
	}
	args = append(args, userID, currentName)

	query := r.db.Rebind(`UPDATE meals SET ` + strings.Join(sets, ", ") + ` WHERE user_id = ? AND name = ?`)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update meals: %w", err)
	}

	return result.RowsAffected()
}

// Delete removes every meal of userID named name and returns how many were removed.
func (r *MealRepository) Delete(ctx context.Context, userID uuid.UUID, name string) (int64, error) {
	query := r.db.Rebind(`DELETE FROM meals WHERE user_id = ? AND name = ?`)

	result, err := r.db.ExecContext(ctx, query, userID, name)
	if err != nil {
		return 0, fmt.Errorf("delete meals: %w", err)
	}

	return result.RowsAffected()
}

// List returns the meals of userID in creation order. A non-empty name limits
// the result to meals with exactly that name.
func (r *MealRepository) List(ctx context.Context, userID uuid.UUID, name string) ([]model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = ?`
	args := []any{userID}
	if name != "" {
		query += ` AND name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	meals := []model.Meal{}
	if err := r.db.SelectContext(ctx, &meals, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select meals: %w", err)
	}

	return meals, nil
}
