package models

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

type RecurringTransaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	AccountID *int64    `json:"account_id"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Merchant  string    `json:"merchant"`
	Amount    float64   `json:"amount"`
	Frequency string    `json:"frequency"`
	StartDate string    `json:"start_date"`
	NextDate  string    `json:"next_date"`
	EndDate   *string   `json:"end_date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"-"`
}

func DefaultRecurringTransaction(today string) RecurringTransaction {
	return RecurringTransaction{
		Type:      TypeExpense,
		Category:  "General",
		Merchant:  "Unknown",
		Frequency: FrequencyMonthly,
		StartDate: today,
		NextDate:  today,
		Active:    true,
	}
}

type RecurringPatch struct {
	Active   Optional[bool]    `json:"active"`
	Amount   Optional[float64] `json:"amount"`
	NextDate Optional[string]  `json:"next_date"`
	EndDate  Optional[string]  `json:"end_date"`
}
