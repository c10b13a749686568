package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

func (r *Repository) CreateBudget(ctx context.Context, b *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category, limit_amount, spent, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, b.UserID, b.Category, b.Limit, b.Spent, b.Color).Scan(&b.ID); err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, limit_amount, spent, color FROM budgets WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var items []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.Spent, &b.Color); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateBudget(ctx context.Context, id, userID int64, p models.BudgetPatch) error {
	a := &assignments{}
	if p.Category.Set {
		a.set("category", p.Category.Value)
	}
	if p.Limit.Set {
		a.set("limit_amount", p.Limit.Value)
	}
	if p.Spent.Set {
		a.set("spent", p.Spent.Value)
	}
	if p.Color.Set {
		a.set("color", p.Color.Value)
	}
	return r.updateOwned(ctx, Budgets, id, userID, a)
}
