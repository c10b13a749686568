package events

import (
	"encoding/json"
	"time"

	"github.com/Dan9191/money-service/internal/models"
)

// AlertEvent is published once per derived notification.
type AlertEvent struct {
	UserID       int64               `json:"user_id"`
	Username     string              `json:"username"`
	Notification models.Notification `json:"notification"`
	Timestamp    time.Time           `json:"timestamp"`
}

// NewAlertEvent stamps a notification for a user.
func NewAlertEvent(userID int64, username string, n models.Notification, at time.Time) *AlertEvent {
	return &AlertEvent{
		UserID:       userID,
		Username:     username,
		Notification: n,
		Timestamp:    at,
	}
}

// ToJSON converts the event to JSON bytes
func (e *AlertEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AlertEventFromJSON decodes an event published by Publisher.
func AlertEventFromJSON(data []byte) (*AlertEvent, error) {
	var e AlertEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
