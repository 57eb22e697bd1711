package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/dobby/internal/config"
	"github.com/sandevgo/dobby/internal/core"
	"github.com/sandevgo/dobby/internal/grammar"
	"github.com/sandevgo/dobby/internal/morph"
	"github.com/sandevgo/dobby/internal/service/reminder"
	"github.com/sandevgo/dobby/internal/storage/sqlite"
	"github.com/sandevgo/dobby/internal/transport/httpapi"
	"github.com/sandevgo/dobby/internal/transport/telegram"
	"github.com/sandevgo/dobby/pkg/log"
	"github.com/sandevgo/dobby/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dobby services",
	Long:  `Initializes and starts the Telegram bot, the HTTP notification API and the reminder scheduler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting dobby")

		services, err := newServices(ctx)
		if err != nil {
			return err
		}

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("dobby has been shut down gracefully")

		return nil
	},
}

func newServices(ctx context.Context) ([]srv.Service, error) {
	appCfg := config.NewAppConfig(ctx)
	tgCfg := config.NewTelegramConfig(ctx)
	httpCfg := config.NewHTTPConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	users := sqlite.NewUsersRepo(db)
	reminders := sqlite.NewRemindersRepo(db)

	g := grammar.New(morph.NewRussian())

	// The bot both produces reminders and delivers them, so the scheduler
	// gets its notifier late-bound.
	var bot *telegram.Bot
	notifier := core.NotifierFunc(func(ctx context.Context, chatID int64, text string) error {
		return bot.Notify(ctx, chatID, text)
	})

	scheduler := reminder.NewScheduler(reminders, notifier)

	bot, err = telegram.NewBot(ctx, tgCfg, g, scheduler, users)
	if err != nil {
		return nil, err
	}

	api := httpapi.NewServer(httpCfg, users, notifier)

	return []srv.Service{
		bot,
		api,
		scheduler,
		srv.NewCleanup(db.Close),
	}, nil
}

func init() {
	rootCmd.AddCommand(startCmd)
}
