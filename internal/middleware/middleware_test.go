package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/money-service/internal/auth"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[int64]*models.User

func (f fakeUsers) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type brokenUsers struct{}

func (brokenUsers) FindUserByID(context.Context, int64) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func quietLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, &buf
}

func TestAuthMiddleware(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens := auth.NewTokenService("secret")
	tokens.SetClock(func() time.Time { return issued })
	valid, err := tokens.Issue(1)
	require.NoError(t, err)
	ghost, err := tokens.Issue(99)
	require.NoError(t, err)

	expiredTokens := auth.NewTokenService("secret")
	expiredTokens.SetClock(func() time.Time { return issued.Add(auth.TokenTTL) })

	users := fakeUsers{1: {ID: 1, Username: "alice"}}

	tests := []struct {
		name       string
		tokens     TokenValidator
		users      UserFinder
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid", tokens, users, "Bearer " + valid, http.StatusOK, ""},
		{"lowercase scheme", tokens, users, "bearer " + valid, http.StatusOK, ""},
		{"missing header", tokens, users, "", http.StatusUnauthorized, "Authorization header missing"},
		{"no token", tokens, users, "Bearer", http.StatusUnauthorized, "Invalid Authorization header"},
		{"wrong scheme", tokens, users, "Basic " + valid, http.StatusUnauthorized, "Invalid Authorization header"},
		{"three parts", tokens, users, "Bearer " + valid + " extra", http.StatusUnauthorized, "Invalid Authorization header"},
		{"garbage token", tokens, users, "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"expired", expiredTokens, users, "Bearer " + valid, http.StatusUnauthorized, "Token expired"},
		{"unknown user", tokens, users, "Bearer " + ghost, http.StatusUnauthorized, "Invalid token user"},
		{"store failure", tokens, brokenUsers{}, "Bearer " + valid, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := quietLogger()
			var seen *models.User
			h := AuthMiddleware(tt.tokens, tt.users, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = UserFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError == "" {
				require.NotNil(t, seen)
				assert.Equal(t, "alice", seen.Username)
				return
			}
			assert.Nil(t, seen)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestRequestLogger(t *testing.T) {
	log, buf := quietLogger()
	tokens := auth.NewTokenService("secret")
	token, err := tokens.Issue(1)
	require.NoError(t, err)

	var requestID string
	inner := AuthMiddleware(tokens, fakeUsers{1: {ID: 1}}, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))
	h := RequestLogger(log)(inner)

	req := httptest.NewRequest(http.MethodPost, "/api/goals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, rr.Header().Get(RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, requestID, entry["request_id"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, float64(1), entry["user_id"])
	assert.Equal(t, "/api/goals", entry["path"])
}

func TestUserFromContext_Empty(t *testing.T) {
	assert.Nil(t, UserFromContext(context.Background()))
	ctx := WithUser(context.Background(), &models.User{ID: 5})
	assert.Equal(t, int64(5), UserFromContext(ctx).ID)
}
