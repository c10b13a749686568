package service

import (
	"context"
	"errors"

	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/recurrence"
	"github.com/Dan9191/money-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// ProcessDueRecurring materialises every due recurring transaction of every
// user and returns how many transactions were created.
func (s *Service) ProcessDueRecurring(ctx context.Context) (int, error) {
	due, err := s.repo.ListDueRecurring(ctx, s.Today())
	if err != nil {
		return 0, err
	}
	return s.applyRecurring(ctx, due)
}

// ProcessRecurringFor is ProcessDueRecurring limited to one user's rows.
func (s *Service) ProcessRecurringFor(ctx context.Context, user *models.User) (int, error) {
	due, err := s.repo.ListDueRecurringForUser(ctx, user.ID, s.Today())
	if err != nil {
		return 0, err
	}
	return s.applyRecurring(ctx, due)
}

func (s *Service) applyRecurring(ctx context.Context, due []models.RecurringTransaction) (int, error) {
	created := 0
	var errs []error
	for _, rt := range due {
		log := s.log.WithFields(logrus.Fields{"recurring_id": rt.ID, "user_id": rt.UserID})

		plan, err := recurrence.Due(rt, s.Now(), s.Now())
		if err != nil {
			log.Warnf("Skipping recurring transaction: %v", err)
			errs = append(errs, err)
			continue
		}
		if !plan.Changed(rt) {
			continue
		}

		err = s.repo.ApplyRecurrence(ctx, rt, plan.Occurrences, plan.NextDate, plan.Active)
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("Recurring transaction advanced concurrently, skipping")
			continue
		}
		if err != nil {
			log.Errorf("Failed to apply recurring transaction: %v", err)
			errs = append(errs, err)
			continue
		}

		created += len(plan.Occurrences)
		log.WithField("next_date", plan.NextDate).Infof("Recurring transaction materialised %d occurrence(s)", len(plan.Occurrences))
	}
	return created, errors.Join(errs...)
}

// MarkOverdueBills flags pending bills whose due date has passed.
func (s *Service) MarkOverdueBills(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdueBills(ctx, s.Today())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Infof("Marked %d bill(s) overdue", n)
	}
	return n, nil
}

// Digest is the set of alerts pending for one user with an email address.
type Digest struct {
	User          models.User
	Notifications []models.Notification
}

// CollectDigests derives alerts for every user who has an email address and
// returns those with at least one alert.
func (s *Service) CollectDigests(ctx context.Context) ([]Digest, error) {
	users, err := s.repo.ListUsersWithEmail(ctx)
	if err != nil {
		return nil, err
	}

	var digests []Digest
	for i := range users {
		notes, err := s.Notifications(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		if len(notes) == 0 {
			continue
		}
		digests = append(digests, Digest{User: users[i], Notifications: notes})
	}
	return digests, nil
}
