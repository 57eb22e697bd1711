package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/dobby/internal/core"
	"github.com/sandevgo/dobby/pkg/log"
	"github.com/sandevgo/dobby/pkg/retry"
)

const pollInterval = 5 * time.Second

// Scheduler polls the reminder store and delivers due reminders through the
// notifier. Delivery is retried with backoff; a reminder is only marked
// delivered after the notifier accepted it.
type Scheduler struct {
	store    core.ReminderStore
	notifier core.Notifier
	retrier  *retry.Retrier
	interval time.Duration
	done     chan struct{}
}

func NewScheduler(store core.ReminderStore, notifier core.Notifier) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		retrier:  retry.NewDefaultRetrier(),
		interval: pollInterval,
		done:     make(chan struct{}),
	}
}

// Schedule persists a new reminder for delivery at dueAt.
func (s *Scheduler) Schedule(ctx context.Context, chatID int64, text string, dueAt time.Time) (core.Reminder, error) {
	rem := core.Reminder{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Text:      text,
		DueAt:     dueAt,
		CreatedAt: time.Now(),
	}
	if err := s.store.Add(ctx, rem); err != nil {
		return core.Reminder{}, err
	}
	log.FromCtx(ctx).Info().Str("id", rem.ID).Time("due_at", dueAt).Msg("reminder scheduled")
	return rem, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-ticker.C:
			s.deliverDue(ctx)
		}
	}
}

func (s *Scheduler) Shutdown(ctx context.Context) error {
	close(s.done)
	return nil
}

func (s *Scheduler) deliverDue(ctx context.Context) {
	logger := log.FromCtx(ctx)

	due, err := s.store.Due(ctx, time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("failed to load due reminders")
		return
	}

	for _, rem := range due {
		rem := rem
		err := s.retrier.Do(ctx, func() error {
			return s.notifier.Notify(ctx, rem.ChatID, rem.Text)
		})
		if err != nil {
			logger.Error().Err(err).Str("id", rem.ID).Msg("failed to deliver reminder")
			continue
		}

		if err := s.store.MarkDelivered(ctx, rem.ID); err != nil {
			logger.Error().Err(err).Str("id", rem.ID).Msg("failed to mark reminder delivered")
			continue
		}
		logger.Info().Str("id", rem.ID).Int64("chat_id", rem.ChatID).Msg("reminder delivered")
	}
}
