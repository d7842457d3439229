package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/saya/internal/config"
	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/internal/providers/llm"
	"github.com/sandevgo/saya/internal/service/chat"
	"github.com/sandevgo/saya/internal/service/memory"
	"github.com/sandevgo/saya/internal/storage/sqlite"
	"github.com/sandevgo/saya/internal/transport/status"
	"github.com/sandevgo/saya/internal/transport/telegram"
	"github.com/sandevgo/saya/pkg/log"
	"github.com/sandevgo/saya/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	tgCfg := config.NewTelegramConfig(ctx)

	// 2. Storage
	db, store, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup("sqlite", db.Close))

	// 3. Generation API
	generator, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Context builder and responder
	persona, err := memory.LoadPersona(appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load persona")
	}

	// Token counts are only logged at debug level
	meter := memory.NewTiktokenMeter()
	if logger.Debug().Enabled() {
		go meter.Warm(ctx)
	}

	builder := memory.NewContextBuilder(
		store,
		persona,
		memory.Owner{ID: tgCfg.GetOwnerID(), Name: tgCfg.GetOwnerName()},
		memory.WithHistoryLimit(appCfg.GetHistoryLimit()),
		memory.WithTokenMeter(meter),
	)
	responder := chat.NewResponder(builder, generator, store)

	// 5. Transports
	services = append(services, status.NewServer(appCfg.GetHTTPAddr(), store))

	bot, err := telegram.NewBot(ctx, tgCfg, responder)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	services = append(services, bot)

	return services
}

func initStorage(ctx context.Context, cfg core.AppConfig) (*sql.DB, *sqlite.Store, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewStore(db), nil
}

// initEnv loads <runtime>/.env. A missing file is fine; the environment
// may already carry everything.
func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
