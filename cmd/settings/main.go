package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/defeedco/llmsettings/pkg/config"
	"github.com/defeedco/llmsettings/pkg/lib/log"
	"github.com/defeedco/llmsettings/pkg/llms"
	"github.com/joho/godotenv"
)

const defaultDotenvPath = "app/.env"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := loadDotenv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := log.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	logger.Debug().
		Str("registry_endpoint", cfg.RegistryEndpoint).
		Str("provider", cfg.LLM.Provider.String()).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := llms.Init(ctx, &cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("initialize llm settings: %w", err)
	}
	defer func() {
		if err := settings.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close llm clients")
		}
	}()

	callOpts := settings.LLM.CallOptions()
	logger.Info().
		Str("provider", settings.Provider.String()).
		Str("model", settings.LLM.Name()).
		Float64("temperature", callOpts.Temperature).
		Int("max_tokens", callOpts.MaxTokens).
		Str("embedding_model", settings.Embedder.Model).
		Int("chunk_size", settings.ChunkSize).
		Int("chunk_overlap", settings.ChunkOverlap).
		Msg("Settings ready")

	return nil
}

// loadDotenv loads DOTENV_PATH, or app/.env by default. A missing file is
// fine, the process environment alone is a valid configuration.
func loadDotenv() error {
	path := os.Getenv("DOTENV_PATH")
	if path == "" {
		path = defaultDotenvPath
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}
