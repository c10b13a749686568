package models

const (
	NotificationBill   = "bill"
	NotificationBudget = "budget"
)

// Notification is a derived alert; bill and budget fields are filled by kind.
type Notification struct {
	Type       string   `json:"type"`
	Message    string   `json:"message"`
	BillID     int64    `json:"bill_id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Days       *int     `json:"days,omitempty"`
	Category   string   `json:"category,omitempty"`
	Percentage float64  `json:"percentage,omitempty"`
}
