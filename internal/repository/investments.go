package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/money-service/internal/models"
)

func (r *Repository) CreateInvestment(ctx context.Context, inv *models.Investment) error {
	query := `
		INSERT INTO investments
			(user_id, account_id, symbol, name, type, quantity, purchase_price, current_price, purchase_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, inv.UserID, nullable(inv.AccountID), inv.Symbol, inv.Name, inv.Type,
		inv.Quantity, inv.PurchasePrice, inv.CurrentPrice, nullable(inv.PurchaseDate), inv.UpdatedAt).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

func (r *Repository) ListInvestments(ctx context.Context, userID int64) ([]models.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, account_id, symbol, name, type, quantity, purchase_price, current_price, purchase_date, updated_at
		FROM investments WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var items []models.Investment
	for rows.Next() {
		var (
			inv          models.Investment
			accountID    sql.NullInt64
			purchaseDate sql.NullString
		)
		if err := rows.Scan(&inv.ID, &inv.UserID, &accountID, &inv.Symbol, &inv.Name, &inv.Type, &inv.Quantity,
			&inv.PurchasePrice, &inv.CurrentPrice, &purchaseDate, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		inv.AccountID = int64Ptr(accountID)
		inv.PurchaseDate = stringPtr(purchaseDate)
		items = append(items, inv)
	}
	return items, rows.Err()
}

// UpdateInvestment applies the patch and always touches updated_at.
func (r *Repository) UpdateInvestment(ctx context.Context, id, userID int64, p models.InvestmentPatch, at time.Time) error {
	a := &assignments{}
	if p.CurrentPrice.Set {
		a.set("current_price", p.CurrentPrice.Value)
	}
	if p.Quantity.Set {
		a.set("quantity", p.Quantity.Value)
	}
	a.set("updated_at", at)
	return r.updateOwned(ctx, Investments, id, userID, a)
}
