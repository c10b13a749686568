package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/money-service/internal/config"
	"github.com/Dan9191/money-service/internal/events"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type fakeJobs struct {
	recurring int
	overdue   int64
	digests   []service.Digest
	err       error
	calls     []string
}

func (f *fakeJobs) ProcessDueRecurring(context.Context) (int, error) {
	f.calls = append(f.calls, "recurring")
	return f.recurring, f.err
}

func (f *fakeJobs) MarkOverdueBills(context.Context) (int64, error) {
	f.calls = append(f.calls, "overdue")
	return f.overdue, nil
}

func (f *fakeJobs) CollectDigests(context.Context) ([]service.Digest, error) {
	f.calls = append(f.calls, "digests")
	return f.digests, nil
}

func (f *fakeJobs) Now() time.Time { return now }

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendDigest(to, _ string, _ []models.Notification, _ time.Time) error {
	f.sent = append(f.sent, to)
	return f.err
}

type fakePublisher struct {
	events []*events.AlertEvent
}

func (f *fakePublisher) PublishAlert(_ context.Context, e *events.AlertEvent) error {
	f.events = append(f.events, e)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func digestsFixture() []service.Digest {
	email := "alice@example.com"
	return []service.Digest{
		{
			User: models.User{ID: 1, Username: "alice", Email: &email},
			Notifications: []models.Notification{
				{Type: models.NotificationBill, Message: "Bill Rent (₹900.00) due in 3 day(s)."},
				{Type: models.NotificationBudget, Message: "Budget Food is at 95% of limit."},
			},
		},
		{
			User:          models.User{ID: 2, Username: "bob"},
			Notifications: []models.Notification{{Type: models.NotificationBill, Message: "x"}},
		},
	}
}

func TestSendDigests(t *testing.T) {
	jobs := &fakeJobs{digests: digestsFixture()}
	mailer := &fakeMailer{}
	publisher := &fakePublisher{}

	err := NewRunner(jobs, mailer, publisher, quietLogger()).SendDigests(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com"}, mailer.sent)
	require.Len(t, publisher.events, 3)
	assert.Equal(t, int64(1), publisher.events[0].UserID)
	assert.Equal(t, now, publisher.events[0].Timestamp)
	assert.Equal(t, "bob", publisher.events[2].Username)
}

func TestSendDigests_MailFailureDoesNotStopPublishing(t *testing.T) {
	jobs := &fakeJobs{digests: digestsFixture()}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	publisher := &fakePublisher{}

	err := NewRunner(jobs, mailer, publisher, quietLogger()).SendDigests(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Len(t, publisher.events, 3)
}

func TestSendDigests_NoDeliveryConfigured(t *testing.T) {
	jobs := &fakeJobs{digests: digestsFixture()}
	err := NewRunner(jobs, nil, nil, quietLogger()).SendDigests(context.Background())
	assert.NoError(t, err)
}

func TestRunAll(t *testing.T) {
	jobs := &fakeJobs{err: errors.New("recurring failed")}
	err := NewRunner(jobs, nil, nil, quietLogger()).RunAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"recurring", "overdue", "digests"}, jobs.calls)
}

func TestRegister(t *testing.T) {
	cfg := &config.Config{RecurringSpec: "@every 1h", BillsSpec: "5 0 * * *", DigestSpec: "0 8 * * *"}
	c := cron.New()
	require.NoError(t, NewRunner(&fakeJobs{}, nil, nil, quietLogger()).Register(c, cfg))
	assert.Len(t, c.Entries(), 3)

	cfg.DigestSpec = "every morning"
	err := NewRunner(&fakeJobs{}, nil, nil, quietLogger()).Register(cron.New(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid digests schedule")
}
