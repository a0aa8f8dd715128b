package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dietlog/dietlog-go/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateName = errors.New("user name already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The caller assigns the id and creation time.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := r.db.Rebind(`INSERT INTO users (id, name, password_hash, created_at) VALUES (?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByName retrieves a user by their login name.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	query := r.db.Rebind(`SELECT id, name, password_hash, created_at FROM users WHERE name = ?`)

	user := &model.User{}
	if err := r.db.GetContext(ctx, user, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}

// Exists reports whether a user with the given id exists.
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM users WHERE id = ?`)

	var n int
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}

	return n > 0, nil
}
