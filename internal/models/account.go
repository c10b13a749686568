package models

import "time"

const (
	AccountChecking   = "checking"
	AccountSavings    = "savings"
	AccountCredit     = "credit"
	AccountInvestment = "investment"
	AccountLoan       = "loan"
)

type Account struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"-"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Balance        float64    `json:"balance"`
	Institution    *string    `json:"institution"`
	LastReconciled *time.Time `json:"last_reconciled"`
	CreatedAt      time.Time  `json:"-"`
}

func DefaultAccount() Account {
	return Account{Name: "New Account", Type: AccountChecking}
}

type AccountPatch struct {
	Name        Optional[string]  `json:"name"`
	Type        Optional[string]  `json:"type"`
	Balance     Optional[float64] `json:"balance"`
	Institution Optional[string]  `json:"institution"`
}
