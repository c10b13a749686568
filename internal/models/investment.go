package models

import "time"

type Investment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	AccountID     *int64    `json:"account_id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	CurrentPrice  float64   `json:"current_price"`
	PurchaseDate  *string   `json:"purchase_date"`
	UpdatedAt     time.Time `json:"-"`
}

func DefaultInvestment(today string) Investment {
	return Investment{Name: "Investment", Type: "stock", PurchaseDate: &today}
}

// TotalValue is quantity × current price.
func (i Investment) TotalValue() float64 {
	return i.Quantity * i.CurrentPrice
}

// GainLoss is (current − purchase) × quantity.
func (i Investment) GainLoss() float64 {
	return (i.CurrentPrice - i.PurchasePrice) * i.Quantity
}

type InvestmentPatch struct {
	CurrentPrice Optional[float64] `json:"current_price"`
	Quantity     Optional[float64] `json:"quantity"`
}

// InvestmentView is an investment with its derived values.
type InvestmentView struct {
	Investment
	TotalValue float64 `json:"total_value"`
	GainLoss   float64 `json:"gain_loss"`
}

type InvestmentSummary struct {
	TotalValue         float64 `json:"total_value"`
	TotalCost          float64 `json:"total_cost"`
	GainLoss           float64 `json:"gain_loss"`
	GainLossPercentage float64 `json:"gain_loss_percentage"`
}

type Portfolio struct {
	Investments []InvestmentView  `json:"investments"`
	Summary     InvestmentSummary `json:"summary"`
}
