package models

// Budget is a spending limit for a category.
type Budget struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"-"`
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
	Color    string  `json:"color"`
}

func DefaultBudget() Budget {
	return Budget{Color: "#3b82f6"}
}

type BudgetPatch struct {
	Category Optional[string]  `json:"category"`
	Limit    Optional[float64] `json:"limit"`
	Spent    Optional[float64] `json:"spent"`
	Color    Optional[string]  `json:"color"`
}
