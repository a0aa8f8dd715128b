package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dietlog/dietlog-go/internal/crypto"
	"github.com/dietlog/dietlog-go/internal/model"
	"github.com/dietlog/dietlog-go/internal/repository"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

var (
	ErrInvalidCredentials = errors.New("user not found")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrNameTaken          = errors.New("name already taken")
)

// AuthService handles registration and login.
type AuthService struct {
	users    UserStore
	sessions *SessionAuthority
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions *SessionAuthority) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.UserResponse{}, ErrNameRequired
	}
	if req.Password == "" {
		return model.UserResponse{}, ErrPasswordRequired
	}
	if len(req.Password) > maxPasswordBytes {
		return model.UserResponse{}, ErrPasswordTooLong
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return model.UserResponse{}, ErrNameTaken
		}
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// Login checks the credentials and issues a session for the matching user.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.Session, model.UserResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Session{}, model.UserResponse{}, ErrNameRequired
	}
	if req.Password == "" {
		return model.Session{}, model.UserResponse{}, ErrPasswordRequired
	}

	user, err := s.users.GetByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Session{}, model.UserResponse{}, ErrInvalidCredentials
		}
		return model.Session{}, model.UserResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.Session{}, model.UserResponse{}, err
	}
	if !match {
		return model.Session{}, model.UserResponse{}, ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(user.ID)
	if err != nil {
		return model.Session{}, model.UserResponse{}, err
	}

	return session, toUserResponse(user), nil
}

func toUserResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
