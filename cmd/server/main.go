package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/jobboard/api"
	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/ai"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/internal/repository/sqlrepo"
	"github.com/garnizeh/jobboard/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	api.SetLogger(logger)
	ollama.SetLogger(logger)

	logger.Info("starting jobboard server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	// Open database connection
	conn, err := db.New(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, conn, dbfs.Migrations, dbfs.SeedFiles); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create question generator: %v", err)
	}

	interviewer, err := ai.NewInterviewer(gen, ai.InterviewerConfig{
		Template: cfg.Interview.Template,
		Timeout:  cfg.Interview.Timeout,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create interviewer: %v", err)
	}

	repo := sqlrepo.New(conn, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenDuration)

	svc, err := jobboard.NewService(jobboard.Deps{
		Users:         repo,
		Jobs:          repo,
		Applications:  repo,
		News:          repo,
		Tokens:        tokens,
		Interviewer:   interviewer,
		Logger:        logger,
		WalletEnabled: cfg.Features.Wallet,
	})
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, svc, tokens)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout + cfg.Interview.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}

	if err := closeGen(); err != nil {
		logger.Warn("closing question generator", slog.Any("err", err))
	}

	// Close database connection
	if err := conn.Close(); err != nil {
		logger.Error("closing DB", slog.Any("err", err))
	}

	logger.Info("server exited")
}

// newGenerator builds the question generator for the configured provider. A
// nil generator makes every interview use the fallback question.
func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Interview.Provider {
	case config.ProviderOllama:
		client, err := ollama.NewDefaultClient(cfg.Ollama)
		if err != nil {
			return nil, noop, err
		}
		hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Health(hctx); err != nil {
			slog.Warn("ollama not reachable; interviews fall back until it is", slog.Any("err", err))
		}
		return ai.NewOllamaGenerator(client, cfg.Interview.Model), client.Close, nil
	case config.ProviderVertexAI:
		gen, err := ai.NewVertexGenerator(ctx, cfg.VertexAI.Project, cfg.VertexAI.Location, cfg.Interview.Model)
		if err != nil {
			return nil, noop, err
		}
		return gen, gen.Close, nil
	default:
		return nil, noop, nil
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
