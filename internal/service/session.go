package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dietlog/dietlog-go/internal/crypto"
	"github.com/dietlog/dietlog-go/internal/model"
)

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrNoCredential      = fmt.Errorf("%w: no user logged in", ErrUnauthenticated)
	ErrInvalidCredential = fmt.Errorf("%w: no user found for session", ErrUnauthenticated)
)

// SessionAuthority issues session tokens at login and resolves them back to a
// user id on every protected request.
type SessionAuthority struct {
	users  UserStore
	codec  crypto.SessionCodec
	maxAge time.Duration
	now    func() time.Time
}

// NewSessionAuthority creates a SessionAuthority. maxAge is the lifetime
// suggested to the client.
func NewSessionAuthority(users UserStore, codec crypto.SessionCodec, maxAge time.Duration) *SessionAuthority {
	return &SessionAuthority{
		users:  users,
		codec:  codec,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Issue creates a session for userID.
func (a *SessionAuthority) Issue(userID uuid.UUID) (model.Session, error) {
	token, err := a.codec.Encode(userID, a.now())
	if err != nil {
		return model.Session{}, fmt.Errorf("encode session: %w", err)
	}
	return model.Session{Token: token, MaxAge: a.maxAge}, nil
}

// Authenticate resolves token to the id of an existing user. The returned id
// is the authorization scope for the rest of the request.
func (a *SessionAuthority) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoCredential
	}

	userID, err := a.codec.Decode(token)
	if err != nil {
		return uuid.Nil, ErrInvalidCredential
	}

	ok, err := a.users.Exists(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, ErrInvalidCredential
	}

	return userID, nil
}
