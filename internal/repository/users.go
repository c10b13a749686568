package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/money-service/internal/models"
)

const userColumns = `id, username, password_hash, full_name, email, mobile, hobbies, bio, avatar_url, created_at`

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Repository) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update and returns the stored user.
func (r *Repository) UpdateProfile(ctx context.Context, userID int64, p models.ProfilePatch) (*models.User, error) {
	a := &assignments{}
	for _, f := range []struct {
		column string
		value  models.Optional[string]
	}{
		{"full_name", p.FullName},
		{"email", p.Email},
		{"mobile", p.Mobile},
		{"hobbies", p.Hobbies},
		{"bio", p.Bio},
		{"avatar_url", p.AvatarURL},
	} {
		if f.value.Set {
			a.set(f.column, nullable(f.value.Ptr()))
		}
	}
	if a.empty() {
		return r.FindUserByID(ctx, userID)
	}

	a.args = append(a.args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, joinSets(a), len(a.args))
	res, err := r.db.ExecContext(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := expectRow(res); err != nil {
		return nil, err
	}
	return r.FindUserByID(ctx, userID)
}

// ListUsersWithEmail returns users that can receive alert digests.
func (r *Repository) ListUsersWithEmail(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email IS NOT NULL AND email <> '' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u                                                models.User
		fullName, email, mobile, hobbies, bio, avatarURL sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &fullName, &email, &mobile, &hobbies, &bio, &avatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.FullName = stringPtr(fullName)
	u.Email = stringPtr(email)
	u.Mobile = stringPtr(mobile)
	u.Hobbies = stringPtr(hobbies)
	u.Bio = stringPtr(bio)
	u.AvatarURL = stringPtr(avatarURL)
	return &u, nil
}
