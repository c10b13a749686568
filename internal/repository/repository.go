package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

// Table names a user-owned table.
type Table string

const (
	Transactions          Table = "transactions"
	Budgets               Table = "budgets"
	Goals                 Table = "goals"
	Bills                 Table = "bills"
	Accounts              Table = "accounts"
	EnvelopeBudgets       Table = "envelope_budgets"
	RecurringTransactions Table = "recurring_transactions"
	Investments           Table = "investments"
	NetWorthSnapshots     Table = "net_worth_snapshots"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OwnerOf returns the user_id of the row, or ErrNotFound.
func (r *Repository) OwnerOf(ctx context.Context, table Table, id int64) (int64, error) {
	var userID int64
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE id = $1`, table)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up %s owner: %w", table, err)
	}
	return userID, nil
}

// Delete hard-deletes a row belonging to userID.
func (r *Repository) Delete(ctx context.Context, table Table, id, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, table)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return expectRow(res)
}

// assignments accumulates the SET clause of a partial UPDATE.
type assignments struct {
	sets []string
	args []any
}

func (a *assignments) set(column string, value any) {
	a.args = append(a.args, value)
	a.sets = append(a.sets, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

// expr adds a column assignment evaluated by the database.
func (a *assignments) expr(column, expression string) {
	a.sets = append(a.sets, column+" = "+expression)
}

func (a *assignments) empty() bool {
	return len(a.sets) == 0
}

func joinSets(a *assignments) string {
	return strings.Join(a.sets, ", ")
}

// statement renders UPDATE ... WHERE id AND user_id plus an optional suffix.
func (a *assignments) statement(table Table, id, userID int64, suffix string) (string, []any) {
	args := append(append([]any{}, a.args...), id, userID)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d AND user_id = $%d%s`,
		table, joinSets(a), len(args)-1, len(args), suffix)
	return query, args
}

// updateOwned applies the assignments in a single statement.
func (r *Repository) updateOwned(ctx context.Context, table Table, id, userID int64, a *assignments) error {
	if a.empty() {
		_, err := r.OwnerOf(ctx, table, id)
		return err
	}
	query, args := a.statement(table, id, userID, "")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// nullable turns a nil pointer into SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
