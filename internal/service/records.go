package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/recurrence"
	"github.com/Dan9191/money-service/internal/repository"
)

func validTransactionType(t string) bool {
	return t == models.TypeIncome || t == models.TypeExpense
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil && len(s) == 7
}

// Transactions

func (s *Service) ListTransactions(ctx context.Context, user *models.User) ([]models.Transaction, error) {
	return s.repo.ListTransactions(ctx, user.ID)
}

func (s *Service) CreateTransaction(ctx context.Context, user *models.User, t models.Transaction) (int64, error) {
	if !validTransactionType(t.Type) {
		return 0, validationf("type must be income or expense")
	}
	if t.Amount < 0 {
		return 0, validationf("amount must not be negative")
	}
	t.UserID = user.ID
	t.CreatedAt = s.Now()
	if err := s.repo.CreateTransaction(ctx, &t); err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, user *models.User, id int64, p models.TransactionPatch) error {
	if err := s.authorize(ctx, repository.Transactions, id, user); err != nil {
		return err
	}
	if err := rejectNull(
		field{"type", p.Type}, field{"category", p.Category}, field{"amount", p.Amount},
		field{"merchant", p.Merchant}, field{"date", p.Date}, field{"time", p.Time},
	); err != nil {
		return err
	}
	if p.Type.Set && !validTransactionType(p.Type.Value) {
		return validationf("type must be income or expense")
	}
	if p.Amount.Set && p.Amount.Value < 0 {
		return validationf("amount must not be negative")
	}
	return mapRepoErr(s.repo.UpdateTransaction(ctx, id, user.ID, p))
}

// Budgets

func (s *Service) ListBudgets(ctx context.Context, user *models.User) ([]models.Budget, error) {
	return s.repo.ListBudgets(ctx, user.ID)
}

func (s *Service) CreateBudget(ctx context.Context, user *models.User, b models.Budget) (int64, error) {
	b.Category = strings.TrimSpace(b.Category)
	if b.Category == "" {
		return 0, validationf("Category is required")
	}
	if b.Limit <= 0 {
		return 0, validationf("Limit must be a positive number")
	}
	b.UserID = user.ID
	if err := s.repo.CreateBudget(ctx, &b); err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (s *Service) UpdateBudget(ctx context.Context, user *models.User, id int64, p models.BudgetPatch) error {
	if err := s.authorize(ctx, repository.Budgets, id, user); err != nil {
		return err
	}
	if err := rejectNull(
		field{"category", p.Category}, field{"limit", p.Limit}, field{"spent", p.Spent}, field{"color", p.Color},
	); err != nil {
		return err
	}
	return mapRepoErr(s.repo.UpdateBudget(ctx, id, user.ID, p))
}

// Goals

func (s *Service) ListGoals(ctx context.Context, user *models.User) ([]models.Goal, error) {
	return s.repo.ListGoals(ctx, user.ID)
}

func (s *Service) CreateGoal(ctx context.Context, user *models.User, g models.Goal) (int64, error) {
	g.UserID = user.ID
	if err := s.repo.CreateGoal(ctx, &g); err != nil {
		return 0, err
	}
	return g.ID, nil
}

func (s *Service) UpdateGoal(ctx context.Context, user *models.User, id int64, p models.GoalPatch) error {
	if err := s.authorize(ctx, repository.Goals, id, user); err != nil {
		return err
	}
	if err := rejectNull(
		field{"name", p.Name}, field{"target", p.Target}, field{"current", p.Current},
		field{"deadline", p.Deadline}, field{"priority", p.Priority},
	); err != nil {
		return err
	}
	return mapRepoErr(s.repo.UpdateGoal(ctx, id, user.ID, p))
}

// Bills

func (s *Service) ListBills(ctx context.Context, user *models.User) ([]models.Bill, error) {
	return s.repo.ListBills(ctx, user.ID)
}

func (s *Service) CreateBill(ctx context.Context, user *models.User, b models.Bill) (int64, error) {
	b.UserID = user.ID
	if err := s.repo.CreateBill(ctx, &b); err != nil {
		return 0, err
	}
	return b.ID, nil
}

// UpdateBill applies field changes and the paid/auto toggles in one statement.
func (s *Service) UpdateBill(ctx context.Context, user *models.User, id int64, p models.BillPatch) (*models.BillState, error) {
	if err := s.authorize(ctx, repository.Bills, id, user); err != nil {
		return nil, err
	}
	if err := rejectNull(field{"name", p.Name}, field{"amount", p.Amount}, field{"due_date", p.DueDate}); err != nil {
		return nil, err
	}
	state, err := s.repo.UpdateBill(ctx, id, user.ID, p)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return state, nil
}

// Accounts

func (s *Service) ListAccounts(ctx context.Context, user *models.User) ([]models.Account, error) {
	return s.repo.ListAccounts(ctx, user.ID)
}

func (s *Service) CreateAccount(ctx context.Context, user *models.User, a models.Account) (int64, error) {
	a.UserID = user.ID
	a.CreatedAt = s.Now()
	if err := s.repo.CreateAccount(ctx, &a); err != nil {
		return 0, err
	}
	s.log.Infof("Account created for user %d: %s", user.ID, a.Name)
	return a.ID, nil
}

func (s *Service) UpdateAccount(ctx context.Context, user *models.User, id int64, p models.AccountPatch) error {
	if err := s.authorize(ctx, repository.Accounts, id, user); err != nil {
		return err
	}
	if err := rejectNull(field{"name", p.Name}, field{"type", p.Type}, field{"balance", p.Balance}); err != nil {
		return err
	}
	return mapRepoErr(s.repo.UpdateAccount(ctx, id, user.ID, p))
}

// ReconcileAccount stamps the account as reconciled now.
func (s *Service) ReconcileAccount(ctx context.Context, user *models.User, id int64) error {
	if err := s.authorize(ctx, repository.Accounts, id, user); err != nil {
		return err
	}
	return mapRepoErr(s.repo.ReconcileAccount(ctx, id, user.ID, s.Now()))
}

// ownAccount checks an optional account reference.
func (s *Service) ownAccount(ctx context.Context, user *models.User, accountID *int64) error {
	if accountID == nil {
		return nil
	}
	err := s.authorize(ctx, repository.Accounts, *accountID, user)
	if errors.Is(err, ErrNotFound) {
		return validationf("account %d does not exist", *accountID)
	}
	return err
}

// Envelope budgets

// ListEnvelopes lists one month's envelopes; an empty month means the current one.
func (s *Service) ListEnvelopes(ctx context.Context, user *models.User, month string) ([]models.EnvelopeBudget, error) {
	if month == "" {
		month = s.Now().Format("2006-01")
	}
	if !validMonth(month) {
		return nil, validationf("month must be YYYY-MM")
	}
	return s.repo.ListEnvelopes(ctx, user.ID, month)
}

func (s *Service) CreateEnvelope(ctx context.Context, user *models.User, e models.EnvelopeBudget) (int64, error) {
	if !validMonth(e.Month) {
		return 0, validationf("month must be YYYY-MM")
	}
	if e.Priority < 1 || e.Priority > 10 {
		return 0, validationf("priority must be between 1 and 10")
	}
	e.UserID = user.ID
	if err := s.repo.CreateEnvelope(ctx, &e); err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (s *Service) UpdateEnvelope(ctx context.Context, user *models.User, id int64, p models.EnvelopePatch) error {
	if err := s.authorize(ctx, repository.EnvelopeBudgets, id, user); err != nil {
		return err
	}
	if err := rejectNull(
		field{"assigned", p.Assigned}, field{"activity", p.Activity}, field{"available", p.Available},
		field{"rollover", p.Rollover}, field{"priority", p.Priority},
	); err != nil {
		return err
	}
	if p.Priority.Set && (p.Priority.Value < 1 || p.Priority.Value > 10) {
		return validationf("priority must be between 1 and 10")
	}
	return mapRepoErr(s.repo.UpdateEnvelope(ctx, id, user.ID, p))
}

// Recurring transactions

func (s *Service) ListRecurring(ctx context.Context, user *models.User) ([]models.RecurringTransaction, error) {
	return s.repo.ListRecurring(ctx, user.ID)
}

func (s *Service) CreateRecurring(ctx context.Context, user *models.User, rt models.RecurringTransaction) (int64, error) {
	if !validTransactionType(rt.Type) {
		return 0, validationf("type must be income or expense")
	}
	if !recurrence.ValidFrequency(rt.Frequency) {
		return 0, validationf("frequency must be daily, weekly, monthly or yearly")
	}
	if rt.Amount < 0 {
		return 0, validationf("amount must not be negative")
	}
	if !validDate(rt.StartDate) || !validDate(rt.NextDate) {
		return 0, validationf("start_date and next_date must be YYYY-MM-DD")
	}
	if rt.EndDate != nil && !validDate(*rt.EndDate) {
		return 0, validationf("end_date must be YYYY-MM-DD")
	}
	if err := s.ownAccount(ctx, user, rt.AccountID); err != nil {
		return 0, err
	}
	rt.UserID = user.ID
	rt.CreatedAt = s.Now()
	if err := s.repo.CreateRecurring(ctx, &rt); err != nil {
		return 0, err
	}
	return rt.ID, nil
}

func (s *Service) UpdateRecurring(ctx context.Context, user *models.User, id int64, p models.RecurringPatch) error {
	if err := s.authorize(ctx, repository.RecurringTransactions, id, user); err != nil {
		return err
	}
	if err := rejectNull(field{"active", p.Active}, field{"amount", p.Amount}, field{"next_date", p.NextDate}); err != nil {
		return err
	}
	if p.Amount.Set && p.Amount.Value < 0 {
		return validationf("amount must not be negative")
	}
	if p.NextDate.Set && !validDate(p.NextDate.Value) {
		return validationf("next_date must be YYYY-MM-DD")
	}
	if p.EndDate.Set && !p.EndDate.Null && !validDate(p.EndDate.Value) {
		return validationf("end_date must be YYYY-MM-DD")
	}
	return mapRepoErr(s.repo.UpdateRecurring(ctx, id, user.ID, p))
}

// Investments

func (s *Service) ListInvestments(ctx context.Context, user *models.User) ([]models.Investment, error) {
	return s.repo.ListInvestments(ctx, user.ID)
}

func (s *Service) CreateInvestment(ctx context.Context, user *models.User, inv models.Investment) (int64, error) {
	if err := s.ownAccount(ctx, user, inv.AccountID); err != nil {
		return 0, err
	}
	inv.UserID = user.ID
	inv.Symbol = strings.ToUpper(inv.Symbol)
	inv.UpdatedAt = s.Now()
	if err := s.repo.CreateInvestment(ctx, &inv); err != nil {
		return 0, err
	}
	return inv.ID, nil
}

func (s *Service) UpdateInvestment(ctx context.Context, user *models.User, id int64, p models.InvestmentPatch) error {
	if err := s.authorize(ctx, repository.Investments, id, user); err != nil {
		return err
	}
	if err := rejectNull(field{"current_price", p.CurrentPrice}, field{"quantity", p.Quantity}); err != nil {
		return err
	}
	return mapRepoErr(s.repo.UpdateInvestment(ctx, id, user.ID, p, s.Now()))
}

// BudgetTemplates lists the public templates.
func (s *Service) BudgetTemplates(ctx context.Context) ([]models.BudgetTemplate, error) {
	return s.repo.ListPublicTemplates(ctx)
}
