package core

import (
	"context"
	"time"
)

// User is a Telegram user known to the bot, addressable by username from
// the HTTP API.
type User struct {
	Username      string
	PrivateChatID int64
	RegisteredAt  time.Time
}

// Reminder is one scheduled notification.
type Reminder struct {
	ID        string
	ChatID    int64
	Text      string
	DueAt     time.Time
	CreatedAt time.Time
}

// UserRegistry is the persisted username -> private chat directory.
type UserRegistry interface {
	SaveUser(ctx context.Context, user User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// ReminderStore persists scheduled reminders across restarts.
type ReminderStore interface {
	Add(ctx context.Context, r Reminder) error
	Due(ctx context.Context, now time.Time) ([]Reminder, error)
	MarkDelivered(ctx context.Context, id string) error
}

// Notifier delivers a message to a chat. Implemented by the Telegram
// transport, consumed by the scheduler and the HTTP API.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, chatID int64, text string) error

func (f NotifierFunc) Notify(ctx context.Context, chatID int64, text string) error {
	return f(ctx, chatID, text)
}
