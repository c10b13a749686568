package models

import "encoding/json"

const (
	BillPending = "pending"
	BillPaid    = "paid"
	BillOverdue = "overdue"
)

// Bill represents a scheduled payment owed by the user
type Bill struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"-"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"` // YYYY-MM-DD
	Status  string  `json:"status"`
	Auto    bool    `json:"auto"`
}

func DefaultBill() Bill {
	return Bill{Name: "Bill", Status: BillPending}
}

// BillPatch updates a bill. The toggle keys act on presence alone.
type BillPatch struct {
	Name       Optional[string]          `json:"name"`
	Amount     Optional[float64]         `json:"amount"`
	DueDate    Optional[string]          `json:"due_date"`
	TogglePaid Optional[json.RawMessage] `json:"toggle_paid"`
	ToggleAuto Optional[json.RawMessage] `json:"toggle_auto"`
}

// BillState is the post-update status reported back to the caller.
type BillState struct {
	Status string `json:"status_now"`
	Auto   bool   `json:"auto"`
}
