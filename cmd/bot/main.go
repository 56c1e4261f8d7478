package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ykvlv/assistant-bot/internal/app"
	"github.com/ykvlv/assistant-bot/internal/config"
	"github.com/ykvlv/assistant-bot/internal/logger"
	"github.com/ykvlv/assistant-bot/internal/store"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		// Cobra already printed the error.
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "assistant-bot",
		Short:        "Run the Telegram assistant bot",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runBot,
	}
	root.AddCommand(newMigrateCmd())
	return root
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	// Ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("app init failed", zap.Error(err))
		return err
	}
	if err := application.Run(cmd.Context()); err != nil {
		log.Error("app run failed", zap.Error(err))
		return err
	}
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			repo, err := store.Open(cmd.Context(), db.DBDriver, db.DSN())
			if err != nil {
				return err
			}
			cmd.Printf("migrations applied (%s)\n", db.DBDriver)
			return repo.Close()
		},
	}
}
