// Package analytics derives aggregate views from a user's stored records.
// Every function is pure: callers load the rows and pass them in.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dan9191/money-service/internal/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// TrendWindow is how far back, by insertion time, SpendingTrend looks.
const TrendWindow = 180 * 24 * time.Hour

// TrendMonths is the number of month buckets SpendingTrend returns.
const TrendMonths = 6

// Palette colours category slices by rank.
var Palette = []string{"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6", "#ec4899", "#06b6d4", "#14b8a6"}

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type bucket struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

// SpendingTrend sums income and expense per YYYY-MM of the transaction date,
// considering only rows inserted within TrendWindow of now. The six months
// ending at now are always present. The last TrendMonths keys are returned in
// ascending order.
func SpendingTrend(txs []models.Transaction, now time.Time) []models.TrendPoint {
	cutoff := now.Add(-TrendWindow)
	buckets := make(map[string]*bucket)
	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		return b
	}

	for _, t := range txs {
		if t.CreatedAt.Before(cutoff) {
			continue
		}
		b := get(monthKey(t.Date))
		amount := decimal.NewFromFloat(t.Amount)
		if t.Type == models.TypeIncome {
			b.income = b.income.Add(amount)
		} else {
			b.expense = b.expense.Add(amount)
		}
	}

	for i := TrendMonths - 1; i >= 0; i-- {
		get(now.AddDate(0, 0, -30*i).Format("2006-01"))
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > TrendMonths {
		keys = keys[len(keys)-TrendMonths:]
	}

	points := make([]models.TrendPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		points = append(points, models.TrendPoint{
			Month:   k,
			Name:    monthLabel(k),
			Income:  b.income.InexactFloat64(),
			Expense: b.expense.InexactFloat64(),
		})
	}
	return points
}

func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// monthLabel renders "2024-03" as "Mar". Keys that do not carry a month
// number are returned unchanged.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return monthNames[t.Month()-1]
}

// CategoryBreakdown sums expense amounts per category, drops non-positive
// totals and ranks the rest by amount, largest first.
func CategoryBreakdown(txs []models.Transaction) []models.CategorySlice {
	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != models.TypeExpense {
			continue
		}
		sum, seen := totals[t.Category]
		if !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = sum.Add(decimal.NewFromFloat(t.Amount))
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].GreaterThan(totals[order[j]])
	})

	slices := make([]models.CategorySlice, 0, len(order))
	for idx, category := range order {
		total := totals[category]
		if !total.IsPositive() {
			continue
		}
		slices = append(slices, models.CategorySlice{
			Category: category,
			Amount:   total.InexactFloat64(),
			Color:    Palette[idx%len(Palette)],
		})
	}
	return slices
}

// ComputeNetWorth values asset accounts and holdings against liability accounts.
func ComputeNetWorth(accounts []models.Account, investments []models.Investment) models.NetWorth {
	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, a := range accounts {
		balance := decimal.NewFromFloat(a.Balance)
		switch a.Type {
		case models.AccountChecking, models.AccountSavings, models.AccountInvestment:
			assets = assets.Add(balance)
		case models.AccountCredit, models.AccountLoan:
			liabilities = liabilities.Add(balance.Abs())
		}
	}
	for _, inv := range investments {
		assets = assets.Add(decimal.NewFromFloat(inv.Quantity).Mul(decimal.NewFromFloat(inv.CurrentPrice)))
	}
	return models.NetWorth{
		Assets:      assets.InexactFloat64(),
		Liabilities: liabilities.InexactFloat64(),
		NetWorth:    assets.Sub(liabilities).InexactFloat64(),
	}
}

// AgeOfMoneyIncomeSample is how many recent incomes AgeOfMoney inspects.
const AgeOfMoneyIncomeSample = 10

// NoIncomeMessage is reported when the user has no income rows.
const NoIncomeMessage = "No income data available"

// AgeOfMoney estimates how many days pass between earning and spending.
// txs must be in storage order; for each of the latest incomes the first
// expense in that order dated on or after it is the match.
func AgeOfMoney(txs []models.Transaction) models.AgeOfMoney {
	var incomes, expenses []models.Transaction
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			incomes = append(incomes, t)
		case models.TypeExpense:
			expenses = append(expenses, t)
		}
	}
	if len(incomes) == 0 {
		return models.AgeOfMoney{Value: 0, Message: NoIncomeMessage}
	}

	sort.SliceStable(incomes, func(i, j int) bool { return incomes[i].Date > incomes[j].Date })
	if len(incomes) > AgeOfMoneyIncomeSample {
		incomes = incomes[:AgeOfMoneyIncomeSample]
	}

	total, count := 0, 0
	for _, income := range incomes {
		earned, err := time.Parse(dateLayout, income.Date)
		if err != nil {
			continue
		}
		for _, expense := range expenses {
			if expense.Date < income.Date {
				continue
			}
			spent, err := time.Parse(dateLayout, expense.Date)
			if err != nil {
				continue
			}
			total += int((spent.Unix() - earned.Unix()) / secondsPerDay)
			count++
			break
		}
	}

	var age float64
	if count > 0 {
		age = float64(total) / float64(count)
	}
	return models.AgeOfMoney{
		Value:   math.RoundToEven(age*10) / 10,
		Message: fmt.Sprintf("On average, you spend money %d days after earning it", int(math.RoundToEven(age))),
	}
}

// SummarizeInvestments decorates holdings with derived values and totals them.
func SummarizeInvestments(investments []models.Investment) models.Portfolio {
	views := make([]models.InvestmentView, 0, len(investments))
	value := decimal.Zero
	cost := decimal.Zero
	for _, inv := range investments {
		qty := decimal.NewFromFloat(inv.Quantity)
		current := qty.Mul(decimal.NewFromFloat(inv.CurrentPrice))
		paid := qty.Mul(decimal.NewFromFloat(inv.PurchasePrice))
		value = value.Add(current)
		cost = cost.Add(paid)
		views = append(views, models.InvestmentView{
			Investment: inv,
			TotalValue: current.InexactFloat64(),
			GainLoss:   current.Sub(paid).InexactFloat64(),
		})
	}

	gain := value.Sub(cost)
	percentage := decimal.Zero
	if cost.IsPositive() {
		percentage = gain.Div(cost).Mul(decimal.NewFromInt(100))
	}
	return models.Portfolio{
		Investments: views,
		Summary: models.InvestmentSummary{
			TotalValue:         value.InexactFloat64(),
			TotalCost:          cost.InexactFloat64(),
			GainLoss:           gain.InexactFloat64(),
			GainLossPercentage: percentage.InexactFloat64(),
		},
	}
}
