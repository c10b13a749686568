package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

// CreateSnapshot appends a net worth snapshot.
func (r *Repository) CreateSnapshot(ctx context.Context, s *models.NetWorthSnapshot) error {
	query := `
		INSERT INTO net_worth_snapshots (user_id, date, assets, liabilities, net_worth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, s.UserID, s.Date, s.Assets, s.Liabilities, s.NetWorth, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create net worth snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the user's snapshot history, latest date first.
func (r *Repository) ListSnapshots(ctx context.Context, userID int64) ([]models.NetWorthSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, date, assets, liabilities, net_worth, created_at
		FROM net_worth_snapshots WHERE user_id = $1 ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list net worth snapshots: %w", err)
	}
	defer rows.Close()

	var items []models.NetWorthSnapshot
	for rows.Next() {
		var s models.NetWorthSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Assets, &s.Liabilities, &s.NetWorth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan net worth snapshot: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
