package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

const transactionColumns = `id, user_id, type, category, amount, merchant, date, time, created_at`

// CreateTransaction inserts a transaction and sets its id
func (r *Repository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return createTransaction(ctx, r.db, t)
}

func createTransaction(ctx context.Context, q queryer, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, category, amount, merchant, date, time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := q.QueryRowContext(ctx, query, t.UserID, t.Type, t.Category, t.Amount, t.Merchant, t.Date, t.Time, t.CreatedAt).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the user's transactions, newest first
func (r *Repository) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var items []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Merchant, &t.Date, &t.Time, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// UpdateTransaction applies the fields present in the patch
func (r *Repository) UpdateTransaction(ctx context.Context, id, userID int64, p models.TransactionPatch) error {
	a := &assignments{}
	if p.Type.Set {
		a.set("type", p.Type.Value)
	}
	if p.Category.Set {
		a.set("category", p.Category.Value)
	}
	if p.Amount.Set {
		a.set("amount", p.Amount.Value)
	}
	if p.Merchant.Set {
		a.set("merchant", p.Merchant.Value)
	}
	if p.Date.Set {
		a.set("date", p.Date.Value)
	}
	if p.Time.Set {
		a.set("time", p.Time.Value)
	}
	return r.updateOwned(ctx, Transactions, id, userID, a)
}
