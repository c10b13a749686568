package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

const recurringColumns = `id, user_id, account_id, type, category, merchant, amount, frequency,
	start_date, next_date, end_date, active, created_at`

func (r *Repository) CreateRecurring(ctx context.Context, rt *models.RecurringTransaction) error {
	query := `
		INSERT INTO recurring_transactions
			(user_id, account_id, type, category, merchant, amount, frequency, start_date, next_date, end_date, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rt.UserID, nullable(rt.AccountID), rt.Type, rt.Category, rt.Merchant,
		rt.Amount, rt.Frequency, rt.StartDate, rt.NextDate, nullable(rt.EndDate), rt.Active, rt.CreatedAt).
		Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("failed to create recurring transaction: %w", err)
	}
	return nil
}

func (r *Repository) ListRecurring(ctx context.Context, userID int64) ([]models.RecurringTransaction, error) {
	return r.queryRecurring(ctx,
		`SELECT `+recurringColumns+` FROM recurring_transactions WHERE user_id = $1 ORDER BY id`, userID)
}

// ListDueRecurring returns active rows of every user whose next_date is on or before today.
func (r *Repository) ListDueRecurring(ctx context.Context, today string) ([]models.RecurringTransaction, error) {
	return r.queryRecurring(ctx, `
		SELECT `+recurringColumns+` FROM recurring_transactions
		WHERE active = $1 AND next_date <= $2 ORDER BY id`, true, today)
}

// ListDueRecurringForUser is ListDueRecurring scoped to one user.
func (r *Repository) ListDueRecurringForUser(ctx context.Context, userID int64, today string) ([]models.RecurringTransaction, error) {
	return r.queryRecurring(ctx, `
		SELECT `+recurringColumns+` FROM recurring_transactions
		WHERE user_id = $1 AND active = $2 AND next_date <= $3 ORDER BY id`, userID, true, today)
}

func (r *Repository) queryRecurring(ctx context.Context, query string, args ...any) ([]models.RecurringTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	defer rows.Close()

	var items []models.RecurringTransaction
	for rows.Next() {
		var (
			rt        models.RecurringTransaction
			accountID sql.NullInt64
			endDate   sql.NullString
		)
		if err := rows.Scan(&rt.ID, &rt.UserID, &accountID, &rt.Type, &rt.Category, &rt.Merchant, &rt.Amount,
			&rt.Frequency, &rt.StartDate, &rt.NextDate, &endDate, &rt.Active, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
		}
		rt.AccountID = int64Ptr(accountID)
		rt.EndDate = stringPtr(endDate)
		items = append(items, rt)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateRecurring(ctx context.Context, id, userID int64, p models.RecurringPatch) error {
	a := &assignments{}
	if p.Active.Set {
		a.set("active", p.Active.Value)
	}
	if p.Amount.Set {
		a.set("amount", p.Amount.Value)
	}
	if p.NextDate.Set {
		a.set("next_date", p.NextDate.Value)
	}
	if p.EndDate.Set {
		a.set("end_date", nullable(p.EndDate.Ptr()))
	}
	return r.updateOwned(ctx, RecurringTransactions, id, userID, a)
}

// ApplyRecurrence records the materialised occurrences and moves the
// schedule forward in one database transaction. The update is guarded on
// the previous next_date so a concurrent run cannot book the same period twice.
func (r *Repository) ApplyRecurrence(ctx context.Context, rt models.RecurringTransaction, occurrences []models.Transaction, nextDate string, active bool) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE recurring_transactions SET next_date = $1, active = $2
		WHERE id = $3 AND user_id = $4 AND next_date = $5`,
		nextDate, active, rt.ID, rt.UserID, rt.NextDate)
	if err != nil {
		return fmt.Errorf("failed to advance recurring transaction: %w", err)
	}
	if err = expectRow(res); err != nil {
		return err
	}

	for i := range occurrences {
		if err = createTransaction(ctx, tx, &occurrences[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recurrence: %w", err)
	}
	return nil
}
