package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/dobby/internal/core"
)

// UsersRepo is the sqlite-backed user registry.
type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) SaveUser(ctx context.Context, user core.User) error {
	query := `INSERT INTO users (username, private_chat_id) VALUES (?, ?)
	          ON CONFLICT(username) DO UPDATE SET private_chat_id = excluded.private_chat_id`

	if _, err := r.db.ExecContext(ctx, query, user.Username, user.PrivateChatID); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UsersRepo) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	query := `SELECT username, private_chat_id, registered_at FROM users WHERE username = ?`

	var user core.User
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.PrivateChatID, &user.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (r *UsersRepo) ListUsers(ctx context.Context) ([]core.User, error) {
	query := `SELECT username, private_chat_id, registered_at FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var user core.User
		if err := rows.Scan(&user.Username, &user.PrivateChatID, &user.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
