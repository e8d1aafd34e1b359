package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pevans/newsscrape"
	"github.com/pevans/newsscrape/config"
	"github.com/pevans/newsscrape/export"
	"github.com/pevans/newsscrape/history"
	"github.com/pevans/newsscrape/scraper"
)

// Exit codes
const (
	exitOK      = 0
	exitAborted = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load(getEnv("NEWSSCRAPE_CONFIG", "newsscrape.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitInvalid
	}

	logger, closeLog, err := newLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitInvalid
	}
	defer closeLog()

	input, err := config.InputFromEnv(os.Getenv, cfg.Input)
	if err != nil {
		logger.Error("invalid input", "error", err)
		return exitInvalid
	}
	if err := newsscrape.Validate(input); err != nil {
		logger.Error("invalid input", "error", err)
		return exitInvalid
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", cfg.Output.Dir, "error", err)
		return exitInvalid
	}

	store, err := history.NewStore(cfg.History.DSN)
	if err != nil {
		logger.Error("failed to open run history", "dsn", cfg.History.DSN, "error", err)
		return exitInvalid
	}
	defer store.Close()

	exporter, err := export.NewExporter(export.Config{
		Dir:             cfg.Output.Dir,
		SpreadsheetName: cfg.Output.SpreadsheetName,
		UserAgent:       cfg.Site.UserAgent,
	}, logger)
	if err != nil {
		logger.Error("failed to set up exporter", "error", err)
		return exitInvalid
	}

	session := scraper.NewSession(cfg.Site, logger)
	s := newsscrape.New(session, session, exporter, newsscrape.Options{
		Recorder:   store,
		Logger:     logger,
		RetryDelay: cfg.Retry.Delay,
	})

	logger.Info("starting news scrape", "site", cfg.Site.BaseURL)

	result, err := s.Run(context.Background(), input)
	if errors.Is(err, newsscrape.ErrInvalidArgument) {
		logger.Error("invalid input", "error", err)
		return exitInvalid
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		return exitAborted
	}

	attrs := []any{
		"run_id", result.RunID,
		"collected", len(result.Articles),
		"in_window", result.InWindow,
		"stop_reason", string(result.StopReason),
		"attempts", result.Attempts,
	}
	if result.Report != nil {
		attrs = append(attrs, "spreadsheet", result.Report.SpreadsheetPath)
	}
	logger.Info("run complete", attrs...)

	return exitOK
}
