package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/dobby/internal/config"
	"github.com/sandevgo/dobby/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "dobby",
	Short: "Dobby — a natural-language reminder bot",
	Long:  `Dobby understands Russian temporal phrases ("напомни мне завтра в 3 дня...") and delivers reminders over Telegram.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env next to the binary; real deployments use the
		// environment directly.
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
