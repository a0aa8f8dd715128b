package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dietlog/dietlog-go/internal/model"
	"github.com/dietlog/dietlog-go/internal/service"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "sessionId"

type contextKey string

const userIDKey contextKey = "userID"

// Authenticator resolves a session token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionAuth returns middleware that resolves the session cookie to a user id
// and stores it in the request context. Requests without a valid session are
// rejected with 401.
func SessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				token = c.Value
			}

			userID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					writeJSONError(w, http.StatusUnauthorized, err.Error())
					return
				}
				slog.ErrorContext(r.Context(), "session lookup failed", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// SetSessionCookie writes the session cookie for session.
func SetSessionCookie(w http.ResponseWriter, session model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.MaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the client to drop its session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
