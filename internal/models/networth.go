package models

import "time"

// NetWorthSnapshot is an append-only record of a net worth computation.
type NetWorthSnapshot struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Date        string    `json:"date"`
	Assets      float64   `json:"assets"`
	Liabilities float64   `json:"liabilities"`
	NetWorth    float64   `json:"net_worth"`
	CreatedAt   time.Time `json:"-"`
}
