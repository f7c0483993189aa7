package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/atozflooring/xtracr/internal/common"
	"github.com/atozflooring/xtracr/internal/export"
	"github.com/atozflooring/xtracr/internal/extract"
	"github.com/atozflooring/xtracr/internal/pipeline"
	"github.com/atozflooring/xtracr/internal/pipeline/parsefields"
	"github.com/atozflooring/xtracr/internal/pipeline/textextract"
	"github.com/atozflooring/xtracr/internal/repository"
	"github.com/atozflooring/xtracr/internal/server"
	"github.com/atozflooring/xtracr/internal/template"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		Path:          cfg.Database.Path,
		MigrationsDir: cfg.Database.MigrationsDir,
		BusyTimeout:   cfg.Database.BusyTimeout,
	}, logger)
	if err != nil {
		logger.Error("db.open.failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.HealthCheck(ctx, db, 5*time.Second); err != nil {
		logger.Error("db.ping.failed", "error", err)
		os.Exit(1)
	}

	registry, err := buildRegistry(cfg.Extraction.TemplatesPath)
	if err != nil {
		logger.Error("templates.load.failed", "path", cfg.Extraction.TemplatesPath, "error", err)
		os.Exit(1)
	}
	logger.Info("templates.loaded", "count", len(registry.Definitions()))

	docsRepo := repository.NewDocumentRepository(db)
	jobsRepo := repository.NewJobRepository(db)
	recordsRepo := repository.NewRecordRepository(db)

	engine := extract.NewEngine(registry, logger)
	decodeStage := textextract.NewPipeline(docsRepo, jobsRepo, extract.NewFileDecoder(), logger)
	parseStage := parsefields.NewPipeline(jobsRepo, recordsRepo, engine, logger)
	processor := pipeline.NewProcessor(decodeStage, parseStage, logger)
	exporter := export.NewService(recordsRepo, logger)

	srv := server.New(cfg.Server, db, docsRepo, recordsRepo, processor, exporter, registry, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http.serving", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http.serve.failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http.shutdown.failed", "error", err)
	}
}

// buildRegistry loads the built-in templates, plus any operator-supplied
// definitions when TEMPLATES_PATH is set.
func buildRegistry(path string) (*template.Registry, error) {
	if path == "" {
		return template.Builtin()
	}
	extra, err := template.LoadDefinitions(path)
	if err != nil {
		return nil, err
	}
	return template.Builtin(extra...)
}
