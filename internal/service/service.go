package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/money-service/internal/auth"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	tokens *auth.TokenService
	log    *logrus.Logger
	now    func() time.Time
}

// NewService initializes a new service
func NewService(repo *repository.Repository, tokens *auth.TokenService, log *logrus.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, log: log, now: time.Now}
}

// SetClock replaces the time source. Dates are always taken in UTC.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the current UTC time.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// Today returns the current UTC date as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.Now().Format(dateLayout)
}

// Register creates a new user with hashed password and signs them in.
func (s *Service) Register(ctx context.Context, c models.Credentials) (*models.AuthResult, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" || c.Password == "" {
		return nil, validationf("username & password required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &Error{Kind: ErrConflict, Msg: "username taken"}
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Username)
	return &models.AuthResult{Token: token, User: user}, nil
}

// Login authenticates a user and returns a fresh token
func (s *Service) Login(ctx context.Context, c models.Credentials) (*models.AuthResult, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(c.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return &models.AuthResult{Token: token, User: user}, nil
}

// UpdateProfile applies a partial profile update; null clears a field.
func (s *Service) UpdateProfile(ctx context.Context, user *models.User, p models.ProfilePatch) (*models.User, error) {
	updated, err := s.repo.UpdateProfile(ctx, user.ID, p)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

// authorize resolves the owner of a row and rejects other users.
func (s *Service) authorize(ctx context.Context, table repository.Table, id int64, user *models.User) error {
	owner, err := s.repo.OwnerOf(ctx, table, id)
	if err != nil {
		return mapRepoErr(err)
	}
	if owner != user.ID {
		s.log.WithFields(logrus.Fields{"table": table, "id": id, "user_id": user.ID}).Warn("Rejected access to foreign record")
		return errForbidden
	}
	return nil
}

// Delete hard-deletes a row the user owns.
func (s *Service) Delete(ctx context.Context, user *models.User, table repository.Table, id int64) error {
	if err := s.authorize(ctx, table, id, user); err != nil {
		return err
	}
	return mapRepoErr(s.repo.Delete(ctx, table, id, user.ID))
}
