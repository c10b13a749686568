package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

func (r *Repository) CreateGoal(ctx context.Context, g *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, g.UserID, g.Name, g.Target, g.Current, g.Deadline, g.Priority).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (r *Repository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, target_amount, current_amount, deadline, priority
		FROM goals WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var items []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Target, &g.Current, &g.Deadline, &g.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateGoal(ctx context.Context, id, userID int64, p models.GoalPatch) error {
	a := &assignments{}
	if p.Name.Set {
		a.set("name", p.Name.Value)
	}
	if p.Target.Set {
		a.set("target_amount", p.Target.Value)
	}
	if p.Current.Set {
		a.set("current_amount", p.Current.Value)
	}
	if p.Deadline.Set {
		a.set("deadline", p.Deadline.Value)
	}
	if p.Priority.Set {
		a.set("priority", p.Priority.Value)
	}
	return r.updateOwned(ctx, Goals, id, userID, a)
}
