package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pravaah/adapters/db/postgres/migrations"
	"pravaah/adapters/models"
	"pravaah/adapters/postgres"
	redisadapter "pravaah/adapters/redis"
	"pravaah/adapters/report"
	"pravaah/app"
	"pravaah/internal"
	"pravaah/internal/config"
	"pravaah/internal/session"
	"pravaah/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.DefaultLogger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConn)

	if err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	registry, err := models.LoadAll(ctx, cfg.Paths.ArtifactsDir)
	if err != nil {
		log.Fatalf("Failed to load model adapters: %v", err)
	}
	for kind, ready := range registry.Status() {
		logger.Info("model %s ready=%v", kind, ready)
	}

	thresholds, err := config.LoadThresholds(cfg.Paths.ThresholdFile)
	if err != nil {
		log.Fatalf("Failed to load thresholds: %v", err)
	}
	policy, err := config.LoadPolicy(cfg.Paths.PolicyFile)
	if err != nil {
		log.Fatalf("Failed to load role policy: %v", err)
	}

	hub := ui.NewHub(logger)
	fanout := app.NewFanoutPublisher(hub)
	stationSvc := app.NewStationService(postgres.NewStationRepository(db), nil, logger)
	if cfg.Redis.Enabled {
		rdb, err := redisadapter.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and fanout: %v", err)
		} else {
			defer rdb.Close()
			fanout = app.NewFanoutPublisher(hub, redisadapter.NewAlertPublisher(rdb, cfg.Redis.AlertChannel))
			stationSvc = app.NewStationService(postgres.NewStationRepository(db), redisadapter.NewReadingsCache(rdb), logger)
		}
	}

	analysisSvc := app.NewAnalysisService(
		registry,
		postgres.NewResultRepository(db),
		postgres.NewAlertRepository(db),
		postgres.NewThresholdRepository(db),
		fanout,
		thresholds,
		logger,
	)
	whatIfSvc := app.NewWhatIfService(registry)
	reportSvc := app.NewReportService(
		report.NewPDFRenderer(),
		report.NewExcelRenderer(),
		report.NewCSVRenderer(),
	)

	sessions := session.NewStore(2 * time.Hour)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if swept := sessions.Sweep(); swept > 0 {
					logger.Debug("swept %d expired sessions", swept)
				}
			}
		}
	}()

	webApp, err := ui.NewApp(ui.Deps{
		Sessions:       sessions,
		Policy:         policy,
		Analysis:       analysisSvc,
		WhatIf:         whatIfSvc,
		Reports:        reportSvc,
		Stations:       stationSvc,
		CitizenReports: postgres.NewCitizenReportRepository(db),
		AlertRepo:      postgres.NewAlertRepository(db),
		Registry:       registry,
		Hub:            hub,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Failed to create dashboard app: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           webApp.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown: %v", err)
		}
	}()

	logger.Info("Pravaah dashboard listening on http://localhost:%s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
