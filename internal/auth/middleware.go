package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	pkghttp "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key for storing the authenticated user in context
	UserContextKey contextKey = "user"
)

// AccountLookup resolves a token subject to an account. Implemented by the
// user repository.
type AccountLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator validates bearer tokens on incoming requests and attaches the
// authenticated identity to the request context. A request without an
// Authorization header passes through unauthenticated; whether that is enough
// is decided per route by RequireAuthenticated.
func Authenticator(codec *TokenCodec, accounts AccountLookup, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				pkghttp.WriteUnauthorized(w, "invalid authorization header format")
				return
			}
			tokenString := parts[1]

			// Identify which account the token names before trusting it.
			// Expiry is deliberately not checked yet.
			subject, err := codec.ExtractSubject(tokenString)
			if err != nil {
				pkghttp.WriteUnauthorized(w, "invalid token")
				return
			}

			user, err := accounts.GetByUsername(r.Context(), subject)
			if err != nil {
				if !errors.Is(err, models.ErrNotFound) {
					logger.Error("account lookup failed during authentication",
						slog.String("username", subject),
						slog.Any("error", err))
					pkghttp.WriteInternalError(w, "Internal server error")
					return
				}
				pkghttp.WriteUnauthorized(w, "invalid token")
				return
			}

			if err := codec.Validate(tokenString, user.Username); err != nil {
				if errors.Is(err, ErrTokenExpired) {
					pkghttp.WriteTokenExpired(w)
					return
				}
				pkghttp.WriteUnauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated rejects requests that reached the handler without an
// authenticated identity. Must be used after Authenticator.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r) == nil {
			pkghttp.WriteUnauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
