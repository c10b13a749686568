// Package recurrence advances recurring transactions through their schedule.
//
// Each frequency has its own Stepper. Monthly and yearly schedules keep the
// day of month of the start date, clamped to the last day of shorter months.
package recurrence

import (
	"fmt"
	"time"

	"github.com/Dan9191/money-service/internal/models"
)

const dateLayout = "2006-01-02"

// MaxCatchUp bounds how many missed periods a single run materialises.
// Remaining periods are picked up by the next run.
const MaxCatchUp = 366

// Stepper computes the occurrence following current. anchor is the start date.
type Stepper interface {
	Next(current, anchor time.Time) time.Time
}

type DailyStepper struct{}

func (DailyStepper) Next(current, _ time.Time) time.Time {
	return current.AddDate(0, 0, 1)
}

type WeeklyStepper struct{}

func (WeeklyStepper) Next(current, _ time.Time) time.Time {
	return current.AddDate(0, 0, 7)
}

type MonthlyStepper struct{}

func (MonthlyStepper) Next(current, anchor time.Time) time.Time {
	return clampedDate(current.Year(), current.Month()+1, anchor.Day())
}

type YearlyStepper struct{}

func (YearlyStepper) Next(current, anchor time.Time) time.Time {
	return clampedDate(current.Year()+1, anchor.Month(), anchor.Day())
}

// clampedDate builds year-month-day, normalising month overflow and
// clamping day to the month's length.
func clampedDate(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

var steppers = map[string]Stepper{
	models.FrequencyDaily:   DailyStepper{},
	models.FrequencyWeekly:  WeeklyStepper{},
	models.FrequencyMonthly: MonthlyStepper{},
	models.FrequencyYearly:  YearlyStepper{},
}

// GetStepper returns the stepper for a frequency.
func GetStepper(frequency string) (Stepper, error) {
	s, ok := steppers[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return s, nil
}

// ValidFrequency reports whether frequency has a stepper.
func ValidFrequency(frequency string) bool {
	_, ok := steppers[frequency]
	return ok
}

// Plan is the outcome of running one recurring transaction up to a date.
type Plan struct {
	Occurrences []models.Transaction
	NextDate    string
	Active      bool
}

// Changed reports whether applying the plan would alter anything.
func (p Plan) Changed(rt models.RecurringTransaction) bool {
	return len(p.Occurrences) > 0 || p.NextDate != rt.NextDate || p.Active != rt.Active
}

// Due computes every occurrence of rt dated on or before today, the
// following next_date, and whether the schedule is still active afterwards.
// createdAt stamps the materialised transactions.
func Due(rt models.RecurringTransaction, today time.Time, createdAt time.Time) (Plan, error) {
	plan := Plan{NextDate: rt.NextDate, Active: rt.Active}
	if !rt.Active {
		return plan, nil
	}

	stepper, err := GetStepper(rt.Frequency)
	if err != nil {
		return plan, err
	}
	next, err := time.Parse(dateLayout, rt.NextDate)
	if err != nil {
		return plan, fmt.Errorf("invalid next_date %q: %w", rt.NextDate, err)
	}
	anchor, err := time.Parse(dateLayout, rt.StartDate)
	if err != nil {
		anchor = next
	}

	var end *time.Time
	if rt.EndDate != nil && *rt.EndDate != "" {
		e, err := time.Parse(dateLayout, *rt.EndDate)
		if err != nil {
			return plan, fmt.Errorf("invalid end_date %q: %w", *rt.EndDate, err)
		}
		end = &e
	}

	day := truncate(today)
	for len(plan.Occurrences) < MaxCatchUp && !next.After(day) {
		if end != nil && next.After(*end) {
			break
		}
		plan.Occurrences = append(plan.Occurrences, models.Transaction{
			UserID:    rt.UserID,
			Type:      rt.Type,
			Category:  rt.Category,
			Amount:    rt.Amount,
			Merchant:  rt.Merchant,
			Date:      next.Format(dateLayout),
			CreatedAt: createdAt,
		})
		next = stepper.Next(next, anchor)
	}

	plan.NextDate = next.Format(dateLayout)
	plan.Active = end == nil || !next.After(*end)
	return plan, nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
