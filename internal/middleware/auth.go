package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmynk/splitledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserIDKey is the context key for storing the authenticated user ID.
const UserIDKey contextKey = "user_id"

// GetUserID extracts the user ID from the context. Returns empty string if
// not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// RequireAuth returns a middleware that validates the bearer token on every
// request and stores the authenticated user ID in the request context.
// Requests without a valid token get 401.
func RequireAuth(manager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				slog.Debug("Token validation failed", "error", err)
				http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
