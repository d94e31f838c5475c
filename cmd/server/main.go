// Package main is the entry point for the TAPP marketplace API server.
// It wires together all services and starts the HTTP server alongside the
// WebSocket hub and background scheduler.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/api"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/scheduler"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/ws"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

func main() {
	// ── 1. Logger ─────────────────────────────────────────────────────────────
	cfg := config.MustLoad()

	var logHandler slog.Handler
	if cfg.IsProd() {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("starting tapp marketplace server", "env", cfg.Server.Env, "port", cfg.Server.Port)

	// ── 2. Database ───────────────────────────────────────────────────────────
	db, err := sqlx.Connect("postgres", cfg.DB.DSN)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err = db.Ping(); err != nil {
		logger.Error("database ping failed", "err", err)
		os.Exit(1)
	}
	logger.Info("database connected")

	// ── 3. Migrations ─────────────────────────────────────────────────────────
	if err = runMigrations(db, "migrations"); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// ── 4. Repositories ───────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)
	insightRepo := repository.NewInsightRepository(db)
	compatibilityRepo := repository.NewCompatibilityRepository(db)

	// ── 5. Services (order matters for injection) ─────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)

	fundingSvc := service.NewFundingService(projectRepo, investmentRepo)

	projectSvc := service.NewProjectService(projectRepo, creatorRepo, userRepo, fundingSvc)

	investmentSvc := service.NewInvestmentService(investmentRepo, projectRepo, fundingSvc, cfg)

	distributionSvc := service.NewDistributionService(db, projectRepo, investmentRepo, cfg)

	creatorSvc := service.NewCreatorService(creatorRepo, cfg)

	insightSvc := service.NewInsightService(insightRepo)

	compatibilitySvc := service.NewCompatibilityService(compatibilityRepo)

	// ── 6. WebSocket Hub ──────────────────────────────────────────────────────
	jwtSecret := []byte(cfg.JWT.AccessSecret)
	var allowedOrigins []string
	if ori := os.Getenv("WS_ALLOWED_ORIGINS"); ori != "" {
		for _, o := range strings.Split(ori, ",") {
			allowedOrigins = append(allowedOrigins, strings.TrimSpace(o))
		}
	}
	hub := ws.NewHub(jwtSecret, allowedOrigins)

	// Wire WS broadcaster into the ledger services
	investmentSvc.SetBroadcaster(hub)
	distributionSvc.SetBroadcaster(hub)

	// ── 7. Root context + signal handling ─────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 8. Start WS Hub ───────────────────────────────────────────────────────
	go hub.Run()
	logger.Info("websocket hub started")

	// ── 9. Scheduler ──────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(creatorSvc, insightSvc, cfg, logger)
	sched.Start(ctx)

	// ── 10. HTTP Router ───────────────────────────────────────────────────────
	router := api.SetupRouter(api.RouterDeps{
		AuthSvc:          authSvc,
		ProjectSvc:       projectSvc,
		InvestmentSvc:    investmentSvc,
		DistributionSvc:  distributionSvc,
		CreatorSvc:       creatorSvc,
		InsightSvc:       insightSvc,
		CompatibilitySvc: compatibilitySvc,
		Hub:              hub,
		Cfg:              cfg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// ── 11. Start server ──────────────────────────────────────────────────────
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
			stop() // trigger graceful shutdown
		}
	}()

	// ── 12. Graceful shutdown ─────────────────────────────────────────────────
	<-ctx.Done()
	logger.Info("shutdown signal received, draining connections…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}

	db.Close()
	logger.Info("server stopped cleanly")
}

// runMigrations reads all *.sql files from dir, sorted by name, and executes
// them sequentially.  Idempotent: SQL files should use IF NOT EXISTS / ON CONFLICT.
func runMigrations(db *sqlx.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("runMigrations: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("runMigrations: read %q: %w", f, err)
		}
		if _, err = db.Exec(string(data)); err != nil {
			return fmt.Errorf("runMigrations: exec %q: %w", f, err)
		}
		slog.Info("migration applied", "file", filepath.Base(f))
	}
	return nil
}
