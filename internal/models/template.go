package models

import "encoding/json"

// BudgetTemplate is a seeded, read-only budget layout.
type BudgetTemplate struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Categories  json.RawMessage `json:"categories"`
	IsPublic    bool            `json:"-"`
}
