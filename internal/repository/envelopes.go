package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

func (r *Repository) CreateEnvelope(ctx context.Context, e *models.EnvelopeBudget) error {
	query := `
		INSERT INTO envelope_budgets (user_id, category, assigned, activity, available, month, rollover, priority, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.UserID, e.Category, e.Assigned, e.Activity, e.Available,
		e.Month, e.Rollover, e.Priority, nullable(e.Notes)).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create envelope budget: %w", err)
	}
	return nil
}

// ListEnvelopes returns the user's envelopes for one YYYY-MM month.
func (r *Repository) ListEnvelopes(ctx context.Context, userID int64, month string) ([]models.EnvelopeBudget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, assigned, activity, available, month, rollover, priority, notes
		FROM envelope_budgets WHERE user_id = $1 AND month = $2 ORDER BY priority, id`, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelope budgets: %w", err)
	}
	defer rows.Close()

	var items []models.EnvelopeBudget
	for rows.Next() {
		var (
			e     models.EnvelopeBudget
			notes sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Assigned, &e.Activity, &e.Available,
			&e.Month, &e.Rollover, &e.Priority, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan envelope budget: %w", err)
		}
		e.Notes = stringPtr(notes)
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateEnvelope(ctx context.Context, id, userID int64, p models.EnvelopePatch) error {
	a := &assignments{}
	if p.Assigned.Set {
		a.set("assigned", p.Assigned.Value)
	}
	if p.Activity.Set {
		a.set("activity", p.Activity.Value)
	}
	if p.Available.Set {
		a.set("available", p.Available.Value)
	}
	if p.Rollover.Set {
		a.set("rollover", p.Rollover.Value)
	}
	if p.Priority.Set {
		a.set("priority", p.Priority.Value)
	}
	if p.Notes.Set {
		a.set("notes", nullable(p.Notes.Ptr()))
	}
	return r.updateOwned(ctx, EnvelopeBudgets, id, userID, a)
}
