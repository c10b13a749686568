// Package notify derives bill and budget alerts and delivers them by email.
package notify

import (
	"fmt"
	"time"

	"github.com/Dan9191/money-service/internal/models"
)

// BillHorizonDays is how close a due date must be for a bill to alert.
const BillHorizonDays = 7

// BudgetThreshold is the spent/limit ratio above which a budget alerts.
const BudgetThreshold = 0.9

const secondsPerDay = 24 * 60 * 60

// Derive returns bill alerts followed by budget alerts. Bills whose due date
// is not YYYY-MM-DD are skipped. Overdue bills still alert.
func Derive(bills []models.Bill, budgets []models.Budget, today time.Time) []models.Notification {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	notes := make([]models.Notification, 0)

	for _, b := range bills {
		if b.Status == models.BillPaid {
			continue
		}
		due, err := time.Parse("2006-01-02", b.DueDate)
		if err != nil {
			continue
		}
		days := int((due.Unix() - day.Unix()) / secondsPerDay)
		if days > BillHorizonDays {
			continue
		}
		amount := b.Amount
		notes = append(notes, models.Notification{
			Type:    models.NotificationBill,
			Message: fmt.Sprintf("Bill %s (₹%.2f) due in %d day(s).", b.Name, b.Amount, days),
			BillID:  b.ID,
			Name:    b.Name,
			Amount:  &amount,
			Days:    &days,
		})
	}

	for _, bud := range budgets {
		if bud.Limit <= 0 {
			continue
		}
		ratio := bud.Spent / bud.Limit
		if ratio <= BudgetThreshold {
			continue
		}
		notes = append(notes, models.Notification{
			Type:       models.NotificationBudget,
			Message:    fmt.Sprintf("Budget %s is at %.0f%% of limit.", bud.Category, ratio*100),
			Category:   bud.Category,
			Percentage: ratio * 100,
		})
	}
	return notes
}
