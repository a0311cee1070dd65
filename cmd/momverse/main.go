package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/momverse/momverse/internal/assistant"
	"github.com/momverse/momverse/internal/buildinfo"
	"github.com/momverse/momverse/internal/cli"
	"github.com/momverse/momverse/internal/config"
	"github.com/momverse/momverse/internal/logging"
	"github.com/momverse/momverse/internal/session"
	"github.com/momverse/momverse/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig(os.Args[1:])

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, err := storage.Open(ctx, cfg.StoreDSN, storage.Options{RedisKeyPrefix: cfg.RedisKeyPrefix})
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	var ai assistant.Assistant = assistant.Disabled{}
	gemini, err := assistant.NewGemini(ctx, assistant.Config{
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}, logger)
	switch {
	case err == nil:
		ai = gemini
	case errors.Is(err, assistant.ErrNoAPIKey):
		logger.Info(ctx, "no AI API key, assistant features disabled")
	default:
		logger.Error(ctx, "assistant init failed", "err", err)
	}

	manager := session.NewManager(store, logger, session.Options{VerifyCredentials: cfg.VerifyCredentials})

	app := cli.NewApp(cli.Deps{Manager: manager, Assistant: ai, Logger: logger}, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "app stopped", "err", err)
	}
}
