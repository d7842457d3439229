package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/saya/internal/core"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// SaveUserName stores the latest display name, replacing any previous one.
func (r *UsersRepo) SaveUserName(ctx context.Context, userID int64, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_names (user_id, name) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET name = excluded.name`,
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to save user name: %w", err)
	}
	return nil
}

// GetUserName returns core.FallbackUserName for unknown users.
func (r *UsersRepo) GetUserName(ctx context.Context, userID int64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM user_names WHERE user_id = ?`, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.FallbackUserName, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user name: %w", err)
	}
	return name, nil
}

func (r *UsersRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_names`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *UsersRepo) listAll(ctx context.Context) ([]core.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, name FROM user_names ORDER BY user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user names: %w", err)
	}
	defer rows.Close()

	users := make([]core.UserProfile, 0)
	for rows.Next() {
		var u core.UserProfile
		if err := rows.Scan(&u.UserID, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user name: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
