package notify

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Dan9191/money-service/internal/config"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Mailer sends alert digests via SMTP
type Mailer struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewMailer creates a new digest mailer
func NewMailer(cfg *config.Config, logger *logrus.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}
	m.send = m.sendSMTP
	return m
}

// BuildDigest formats the alerts for one user into a plain-text email.
func BuildDigest(from, to, username string, notes []models.Notification, today time.Time) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = fmt.Sprintf("MyMoney alerts for %s", today.Format("2006-01-02"))

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", username)
	fmt.Fprintf(&body, "You have %d alert(s):\n\n", len(notes))
	for _, n := range notes {
		fmt.Fprintf(&body, "- %s\n", n.Message)
	}
	body.WriteString("\nBest regards,\nMyMoney Pro")
	e.Text = []byte(body.String())
	return e
}

// SendDigest emails the alerts to the user.
func (m *Mailer) SendDigest(to, username string, notes []models.Notification, today time.Time) error {
	e := BuildDigest(m.cfg.SenderEmail, to, username, notes, today)
	if err := m.send(e); err != nil {
		m.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	m.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (m *Mailer) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	return e.Send(addr, auth)
}
