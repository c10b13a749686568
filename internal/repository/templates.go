package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

// ListPublicTemplates returns the seeded public budget templates.
func (r *Repository) ListPublicTemplates(ctx context.Context) ([]models.BudgetTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, categories, is_public
		FROM budget_templates WHERE is_public = $1 ORDER BY id`, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget templates: %w", err)
	}
	defer rows.Close()

	var items []models.BudgetTemplate
	for rows.Next() {
		var (
			t           models.BudgetTemplate
			description sql.NullString
			categories  string
		)
		if err := rows.Scan(&t.ID, &t.Name, &description, &categories, &t.IsPublic); err != nil {
			return nil, fmt.Errorf("failed to scan budget template: %w", err)
		}
		if !json.Valid([]byte(categories)) {
			return nil, fmt.Errorf("budget template %d has invalid categories JSON", t.ID)
		}
		t.Description = stringPtr(description)
		t.Categories = json.RawMessage(categories)
		items = append(items, t)
	}
	return items, rows.Err()
}
