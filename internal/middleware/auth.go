// Package middleware holds the HTTP middleware shared by all API routes.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dan9191/money-service/internal/auth"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/repository"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	requestContextKey contextKey = "request"
)

var (
	ErrMissingHeader   = errors.New("Authorization header missing")
	ErrMalformedHeader = errors.New("Invalid Authorization header")
	ErrUnknownUser     = errors.New("Invalid token user")
)

// TokenValidator decodes a bearer token into a user id.
type TokenValidator interface {
	Validate(token string) (int64, error)
}

// UserFinder loads the user a token refers to.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Authenticate resolves the request's bearer token to a stored user.
func Authenticate(r *http.Request, tokens TokenValidator, users UserFinder) (*models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, ErrMalformedHeader
	}

	userID, err := tokens.Validate(parts[1])
	if err != nil {
		return nil, err
	}

	user, err := users.FindUserByID(r.Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AuthMiddleware rejects requests without a valid bearer token and puts the
// resolved user in the request context.
func AuthMiddleware(tokens TokenValidator, users UserFinder, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := Authenticate(r, tokens, users)
			if err != nil {
				status, msg := http.StatusUnauthorized, err.Error()
				switch {
				case errors.Is(err, auth.ErrExpired):
					msg = "Token expired"
				case errors.Is(err, auth.ErrMalformed):
					msg = "Invalid token"
				case errors.Is(err, ErrMissingHeader), errors.Is(err, ErrMalformedHeader), errors.Is(err, ErrUnknownUser):
				default:
					log.Errorf("Failed to resolve token user: %v", err)
					status, msg = http.StatusInternalServerError, "internal server error"
				}
				writeError(w, status, msg)
				return
			}

			if meta, ok := r.Context().Value(requestContextKey).(*requestMeta); ok {
				meta.userID = user.ID
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil outside AuthMiddleware.
func UserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// WithUser returns a context carrying user, as AuthMiddleware does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
