package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

func (r *Repository) CreateBill(ctx context.Context, b *models.Bill) error {
	query := `
		INSERT INTO bills (user_id, name, amount, due_date, status, auto)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Name, b.Amount, b.DueDate, b.Status, b.Auto).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *Repository) ListBills(ctx context.Context, userID int64) ([]models.Bill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, amount, due_date, status, auto FROM bills WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var items []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Status, &b.Auto); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// UpdateBill applies the patch in one statement; toggles are evaluated
// against the stored row so concurrent toggles cannot lose an update.
func (r *Repository) UpdateBill(ctx context.Context, id, userID int64, p models.BillPatch) (*models.BillState, error) {
	a := &assignments{}
	if p.TogglePaid.Set {
		a.expr("status", fmt.Sprintf("CASE WHEN status = '%s' THEN '%s' ELSE '%s' END",
			models.BillPaid, models.BillPending, models.BillPaid))
	}
	if p.ToggleAuto.Set {
		a.expr("auto", "NOT auto")
	}
	if p.Name.Set {
		a.set("name", p.Name.Value)
	}
	if p.Amount.Set {
		a.set("amount", p.Amount.Value)
	}
	if p.DueDate.Set {
		a.set("due_date", p.DueDate.Value)
	}

	if !a.empty() {
		query, args := a.statement(Bills, id, userID, "")
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update bill: %w", err)
		}
		if err := expectRow(res); err != nil {
			return nil, err
		}
	}

	state := &models.BillState{}
	err := r.db.QueryRowContext(ctx,
		`SELECT status, auto FROM bills WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&state.Status, &state.Auto)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bill state: %w", err)
	}
	return state, nil
}

// MarkOverdueBills flips pending bills whose due date is before today.
func (r *Repository) MarkOverdueBills(ctx context.Context, today string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bills SET status = $1
		WHERE status = $2 AND LENGTH(due_date) = 10 AND due_date < $3`,
		models.BillOverdue, models.BillPending, today)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue bills: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
