package models

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Merchant  string    `json:"merchant"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"-"`
}

// DefaultTransaction returns the values used for keys a create payload omits.
func DefaultTransaction(today string) Transaction {
	return Transaction{
		Type:     TypeExpense,
		Category: "General",
		Merchant: "Unknown",
		Date:     today,
	}
}

// TransactionPatch is a partial transaction update.
type TransactionPatch struct {
	Type     Optional[string]  `json:"type"`
	Category Optional[string]  `json:"category"`
	Amount   Optional[float64] `json:"amount"`
	Merchant Optional[string]  `json:"merchant"`
	Date     Optional[string]  `json:"date"`
	Time     Optional[string]  `json:"time"`
}
