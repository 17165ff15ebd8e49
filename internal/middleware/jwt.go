package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/setrep/workout-api/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// GetUserID returns the authenticated user id stored by RequireAuth.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID returns a context carrying the given user id. Exposed for tests
// that exercise handlers without the full middleware chain.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth verifies the bearer token on every request and stores the
// authenticated user id in the request context. Requests without a valid
// token are rejected with 401 before dispatch.
func RequireAuth(verifier *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := verifier.Verify(tokenStr)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					unauthorized(w, "token expired")
				case errors.Is(err, auth.ErrTokenMalformed):
					unauthorized(w, "malformed token")
				default:
					unauthorized(w, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
