package models

// TrendPoint represents monthly income and expense totals
type TrendPoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Name    string  `json:"name"`  // Jan..Dec
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategorySlice is one category's share of total spending
type CategorySlice struct {
	Category string  `json:"name"`
	Amount   float64 `json:"value"`
	Color    string  `json:"color"`
}

// NetWorth is the current assets/liabilities position
type NetWorth struct {
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
	NetWorth    float64 `json:"net_worth"`
}

// AgeOfMoney represents the average days between earning and spending
type AgeOfMoney struct {
	Value   float64 `json:"age_of_money"`
	Message string  `json:"message"`
}
