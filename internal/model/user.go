package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the database.
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an issued session credential together with the lifetime the
// client is asked to keep it for.
type Session struct {
	Token  string
	MaxAge time.Duration
}
