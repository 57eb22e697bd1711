package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/dobby/internal/core"
	"github.com/sandevgo/dobby/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu        sync.Mutex
	reminders []core.Reminder
	delivered map[string]bool
}

func newMemStore() *memStore {
	return &memStore{delivered: map[string]bool{}}
}

func (m *memStore) Add(_ context.Context, r core.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, r)
	return nil
}

func (m *memStore) Due(_ context.Context, now time.Time) ([]core.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var due []core.Reminder
	for _, r := range m.reminders {
		if !m.delivered[r.ID] && !r.DueAt.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (m *memStore) MarkDelivered(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delivered[id] = true
	return nil
}

func (m *memStore) deliveredCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.delivered)
}

type recordingNotifier struct {
	mu       sync.Mutex
	failures int
	sent     chan string
}

func (n *recordingNotifier) Notify(_ context.Context, _ int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failures > 0 {
		n.failures--
		return errors.New("delivery failed")
	}
	n.sent <- text
	return nil
}

func newTestScheduler(store core.ReminderStore, notifier core.Notifier) *Scheduler {
	s := NewScheduler(store, notifier)
	s.interval = 10 * time.Millisecond
	s.retrier = retry.NewRetrier(&retry.Config{
		MaxRetries:    2,
		BackoffFactor: 2.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	})
	return s
}

func TestSchedulerDeliversDueReminder(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{sent: make(chan string, 1)}
	s := newTestScheduler(store, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rem, err := s.Schedule(ctx, 42, "позвонить маме", time.Now().Add(-time.Second))
	require.NoError(t, err)
	require.NotEmpty(t, rem.ID)

	go func() { _ = s.Start(ctx) }()
	defer func() { _ = s.Shutdown(context.Background()) }()

	select {
	case text := <-notifier.sent:
		assert.Equal(t, "позвонить маме", text)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder was not delivered")
	}

	assert.Eventually(t, func() bool {
		return store.deliveredCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerRetriesDelivery(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{failures: 2, sent: make(chan string, 1)}
	s := newTestScheduler(store, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Schedule(ctx, 42, "полить цветы", time.Now().Add(-time.Second))
	require.NoError(t, err)

	go func() { _ = s.Start(ctx) }()
	defer func() { _ = s.Shutdown(context.Background()) }()

	select {
	case text := <-notifier.sent:
		assert.Equal(t, "полить цветы", text)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder was not delivered after retries")
	}
}

func TestSchedulerSkipsFutureReminders(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{sent: make(chan string, 1)}
	s := newTestScheduler(store, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Schedule(ctx, 42, "не сейчас", time.Now().Add(time.Hour))
	require.NoError(t, err)

	go func() { _ = s.Start(ctx) }()
	defer func() { _ = s.Shutdown(context.Background()) }()

	select {
	case <-notifier.sent:
		t.Fatal("future reminder must not be delivered")
	case <-time.After(100 * time.Millisecond):
	}
	assert.Zero(t, store.deliveredCount())
}
