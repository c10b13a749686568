// Package scheduler runs the periodic jobs that live outside the request
// path: recurring transaction materialisation, overdue bill marking and
// alert digests.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/money-service/internal/config"
	"github.com/Dan9191/money-service/internal/events"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JobTimeout bounds a single job run.
const JobTimeout = 5 * time.Minute

// Jobs is the slice of the service the scheduler drives.
type Jobs interface {
	ProcessDueRecurring(ctx context.Context) (int, error)
	MarkOverdueBills(ctx context.Context) (int64, error)
	CollectDigests(ctx context.Context) ([]service.Digest, error)
	Now() time.Time
}

type DigestSender interface {
	SendDigest(to, username string, notes []models.Notification, today time.Time) error
}

type AlertPublisher interface {
	PublishAlert(ctx context.Context, e *events.AlertEvent) error
}

// Runner executes the jobs. mailer and publisher may be nil, in which case
// that delivery channel is skipped.
type Runner struct {
	jobs      Jobs
	mailer    DigestSender
	publisher AlertPublisher
	log       *logrus.Logger
}

func NewRunner(jobs Jobs, mailer DigestSender, publisher AlertPublisher, log *logrus.Logger) *Runner {
	return &Runner{jobs: jobs, mailer: mailer, publisher: publisher, log: log}
}

// Register schedules every job on c using the cron specs from cfg.
func (r *Runner) Register(c *cron.Cron, cfg *config.Config) error {
	specs := []struct {
		name string
		spec string
		fn   func(context.Context) error
	}{
		{"recurring", cfg.RecurringSpec, r.ProcessRecurring},
		{"overdue-bills", cfg.BillsSpec, r.MarkOverdueBills},
		{"digests", cfg.DigestSpec, r.SendDigests},
	}
	for _, s := range specs {
		if _, err := c.AddFunc(s.spec, r.job(s.name, s.fn)); err != nil {
			return fmt.Errorf("invalid %s schedule %q: %w", s.name, s.spec, err)
		}
		r.log.Infof("Scheduled %s job: %s", s.name, s.spec)
	}
	return nil
}

// RunAll executes every job once, in order, and joins their errors.
func (r *Runner) RunAll(ctx context.Context) error {
	return errors.Join(
		r.ProcessRecurring(ctx),
		r.MarkOverdueBills(ctx),
		r.SendDigests(ctx),
	)
}

func (r *Runner) job(name string, fn func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
		defer cancel()

		start := time.Now()
		log := r.log.WithField("job", name)
		if err := fn(ctx); err != nil {
			log.WithField("duration", time.Since(start)).Errorf("Job failed: %v", err)
			return
		}
		log.WithField("duration", time.Since(start)).Info("Job finished")
	}
}

func (r *Runner) ProcessRecurring(ctx context.Context) error {
	n, err := r.jobs.ProcessDueRecurring(ctx)
	r.log.Infof("Materialised %d recurring transaction(s)", n)
	return err
}

func (r *Runner) MarkOverdueBills(ctx context.Context) error {
	_, err := r.jobs.MarkOverdueBills(ctx)
	return err
}

// SendDigests emails each user their pending alerts and publishes one event
// per alert. A failure for one user does not stop the others.
func (r *Runner) SendDigests(ctx context.Context) error {
	digests, err := r.jobs.CollectDigests(ctx)
	if err != nil {
		return err
	}

	now := r.jobs.Now()
	var errs []error
	for _, d := range digests {
		log := r.log.WithFields(logrus.Fields{"user_id": d.User.ID, "alerts": len(d.Notifications)})

		if r.mailer != nil && d.User.Email != nil {
			if err := r.mailer.SendDigest(*d.User.Email, d.User.Username, d.Notifications, now); err != nil {
				log.Errorf("Failed to send digest: %v", err)
				errs = append(errs, err)
			} else {
				log.Info("Digest sent")
			}
		}

		if r.publisher == nil {
			continue
		}
		for _, n := range d.Notifications {
			if err := r.publisher.PublishAlert(ctx, events.NewAlertEvent(d.User.ID, d.User.Username, n, now)); err != nil {
				log.Errorf("Failed to publish alert: %v", err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
