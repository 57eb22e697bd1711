package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/dobby/internal/config"
	"github.com/sandevgo/dobby/internal/core"
	"github.com/sandevgo/dobby/internal/grammar"
	"github.com/sandevgo/dobby/internal/service/reminder"
	"github.com/sandevgo/dobby/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot       *tele.Bot
	grammar   *grammar.Grammar
	scheduler *reminder.Scheduler
	users     core.UserRegistry

	mu      sync.Mutex
	pending map[int64]*reminder.Conversation
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	g *grammar.Grammar,
	scheduler *reminder.Scheduler,
	users core.UserRegistry,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		grammar:   g,
		scheduler: scheduler,
		users:     users,
		pending:   make(map[int64]*reminder.Conversation),
	}

	// Carry the base context (with logger) into every handler.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Keep the user directory current so the HTTP API can address senders
	// by username.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			bot.registerSender(c)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/parse", bot.handleParse)
	b.Handle(tele.OnText, bot.handleText)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// Notify implements core.Notifier.
func (b *Bot) Notify(ctx context.Context, chatID int64, text string) error {
	_, err := b.bot.Send(tele.ChatID(chatID), text)
	return err
}

func (b *Bot) registerSender(c tele.Context) {
	sender := c.Sender()
	if sender == nil || sender.Username == "" || c.Chat() == nil {
		return
	}
	ctx := b.ctx(c)
	err := b.users.SaveUser(ctx, core.User{
		Username:      sender.Username,
		PrivateChatID: c.Chat().ID,
	})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("username", sender.Username).Msg("failed to register user")
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send("Привет! Напиши, например: «напомни мне завтра в 3 дня позвонить маме».")
}

// handleParse echoes the recognized temporal fact, the debugging command
// the bot had from day one.
func (b *Bot) handleParse(c tele.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return c.Send("Что разобрать? Пришли /parse <фраза>.")
	}

	moment := b.grammar.ExtractFirstMoment(strings.ToLower(text))
	if moment == nil {
		return c.Send("Не понял 🙁")
	}

	return c.Send(renderMoment(moment), tele.ModeHTML)
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := b.ctx(c)
	logger := log.FromCtx(ctx)
	chatID := c.Chat().ID
	text := strings.ToLower(c.Text())

	b.mu.Lock()
	conv := b.pending[chatID]
	b.mu.Unlock()

	if conv != nil {
		return b.continueConversation(c, conv)
	}

	tokens := b.grammar.Tokenize(text)
	request, ok := reminder.Classify(tokens)
	if !ok {
		logger.Debug().Str("text", c.Text()).Msg("message is not a reminder phrase")
		return nil
	}

	return b.continueConversation(c, reminder.NewConversation(b.grammar, request))
}

// continueConversation advances the clarification dialogue until the
// reminder is scheduled or fails hard.
func (b *Bot) continueConversation(c tele.Context, conv *reminder.Conversation) error {
	ctx := b.ctx(c)
	chatID := c.Chat().ID

	b.mu.Lock()
	_, waiting := b.pending[chatID]
	b.mu.Unlock()

	if waiting {
		if !conv.Answer(strings.ToLower(c.Text())) {
			return c.Send("Во сколько, во сколько?")
		}
	}

	due, question, err := conv.Advance(time.Now())
	if err != nil {
		b.clearPending(chatID)
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to resolve reminder date")
		return c.Send(fmt.Sprintf("Не смогу: %v", err))
	}

	if question != "" {
		b.mu.Lock()
		b.pending[chatID] = conv
		b.mu.Unlock()
		return c.Send(question)
	}

	b.clearPending(chatID)

	if _, err := b.scheduler.Schedule(ctx, chatID, conv.Request().What, due); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to schedule reminder")
		return c.Send("Не получилось сохранить напоминание, попробуй ещё раз.")
	}

	return c.Send(fmt.Sprintf("Ок. Напомню: %s — %s", conv.Request().What, due.Format("02 Jan 2006 15:04")))
}

func (b *Bot) clearPending(chatID int64) {
	b.mu.Lock()
	delete(b.pending, chatID)
	b.mu.Unlock()
}

func (b *Bot) ctx(c tele.Context) context.Context {
	return c.Get(baseContextKey).(context.Context)
}
