package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/dobby/internal/core"
)

// RemindersRepo persists scheduled reminders so a restart does not lose
// them.
type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Add(ctx context.Context, reminder core.Reminder) error {
	query := `INSERT INTO reminders (id, chat_id, text, due_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query,
		reminder.ID, reminder.ChatID, reminder.Text, reminder.DueAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (r *RemindersRepo) Due(ctx context.Context, now time.Time) ([]core.Reminder, error) {
	query := `SELECT id, chat_id, text, due_at, created_at FROM reminders
	          WHERE delivered = 0 AND due_at <= ? ORDER BY due_at`

	rows, err := r.db.QueryContext(ctx, query, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	var due []core.Reminder
	for rows.Next() {
		var rem core.Reminder
		if err := rows.Scan(&rem.ID, &rem.ChatID, &rem.Text, &rem.DueAt, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		due = append(due, rem)
	}
	return due, rows.Err()
}

func (r *RemindersRepo) MarkDelivered(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reminders SET delivered = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark reminder delivered: %w", err)
	}
	return nil
}

var _ core.ReminderStore = (*RemindersRepo)(nil)
var _ core.UserRegistry = (*UsersRepo)(nil)
