package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ayush27641/ClarityVault-Ai/internal/accounts"
	"github.com/Ayush27641/ClarityVault-Ai/internal/files"
	"github.com/Ayush27641/ClarityVault-Ai/internal/llm/gemini"
	"github.com/Ayush27641/ClarityVault-Ai/internal/processing"
	"github.com/Ayush27641/ClarityVault-Ai/internal/services/health"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/auth"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/config"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/server"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/storage/db"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/telemetry"
	"github.com/Ayush27641/ClarityVault-Ai/internal/videos"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Tokens            *auth.TokenService
	AccountsRepo      accounts.Repo
	FilesRepo         files.FilesRepo
	AccountService    *accounts.Service
	FileService       *files.Service
	ProcessingService *processing.Service
	HealthService     *health.Service
}

// Build prepares shared dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	gateway, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.LLMTimeout)
	if err != nil {
		return nil, err
	}

	searcher, err := videos.NewClient(ctx, cfg.YouTubeAPIKey, cfg.YouTubeBaseURL)
	if err != nil {
		return nil, fmt.Errorf("video search client: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tokens: tokens,
	}
	if sqlDB != nil {
		app.AccountsRepo = &accounts.PGRepo{DB: sqlDB}
		app.FilesRepo = &files.PGRepo{DB: sqlDB}
	} else {
		app.AccountsRepo = accounts.NewMemoryRepo()
		app.FilesRepo = files.NewMemoryRepo()
	}

	app.AccountService = accounts.NewService(app.AccountsRepo, tokens)
	app.FileService = files.NewService(app.FilesRepo)
	app.ProcessingService = processing.NewService(gateway, searcher)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.HealthService = health.NewService(cfg.Env, pinger)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		Version:           health.Version,
		Tokens:            tokens,
		AccountHandler:    accounts.NewHandler(app.AccountService),
		FileHandler:       files.NewHandler(app.FileService),
		ProcessingHandler: processing.NewHandler(app.ProcessingService),
		HealthHandler:     health.NewHandler(app.HealthService),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultOptions().WithEnv())
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
