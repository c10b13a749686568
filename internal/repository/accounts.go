package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/money-service/internal/models"
)

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, type, balance, institution, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, account.UserID, account.Name, account.Type, account.Balance,
		nullable(account.Institution), account.CreatedAt).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *Repository) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, balance, institution, last_reconciled, created_at
		FROM accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var items []models.Account
	for rows.Next() {
		var (
			a           models.Account
			institution sql.NullString
			reconciled  sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &institution, &reconciled, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Institution = stringPtr(institution)
		if reconciled.Valid {
			t := reconciled.Time
			a.LastReconciled = &t
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateAccount(ctx context.Context, id, userID int64, p models.AccountPatch) error {
	a := &assignments{}
	if p.Name.Set {
		a.set("name", p.Name.Value)
	}
	if p.Type.Set {
		a.set("type", p.Type.Value)
	}
	if p.Balance.Set {
		a.set("balance", p.Balance.Value)
	}
	if p.Institution.Set {
		a.set("institution", nullable(p.Institution.Ptr()))
	}
	return r.updateOwned(ctx, Accounts, id, userID, a)
}

// ReconcileAccount stamps last_reconciled.
func (r *Repository) ReconcileAccount(ctx context.Context, id, userID int64, at time.Time) error {
	a := &assignments{}
	a.set("last_reconciled", at)
	return r.updateOwned(ctx, Accounts, id, userID, a)
}
