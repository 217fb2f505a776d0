package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/diillson/momcarebot/internal/adapter/driven/config"
	"github.com/diillson/momcarebot/internal/adapter/driven/eventlog"
	"github.com/diillson/momcarebot/internal/adapter/driven/export"
	"github.com/diillson/momcarebot/internal/adapter/driven/spreadsheet"
	"github.com/diillson/momcarebot/internal/adapter/driven/telegram"
	"github.com/diillson/momcarebot/internal/adapter/driving/cli"
	"github.com/diillson/momcarebot/internal/application/usecase"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/diillson/momcarebot/pkg/clock"
	"github.com/diillson/momcarebot/pkg/console"
	"github.com/diillson/momcarebot/pkg/version"
)

func main() {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)

	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), console.NewConsole(), logger)

	// Repositories depend on configuration, so they are built per command.
	app.SetUseCaseFactory(func(cfg types.Config, logger *log.Logger) *usecase.ReminderUseCase {
		notifier := telegram.NewNotifier(telegram.Credentials{
			BotToken: cfg.BotToken,
			ChatID:   cfg.ChatID,
		})
		return usecase.NewReminderUseCase(
			spreadsheet.NewXLSXRepository(),
			export.NewExportRepository(),
			notifier,
			eventlog.NewCSVRepository(cfg.LogPath),
			clock.SystemClock{Location: cfg.Location()},
			cfg,
			logger,
		)
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
