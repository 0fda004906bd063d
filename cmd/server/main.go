// Package main provides the entry point for the projection API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/pipeline"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/server"
	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the anytime-touchdown projection API",
	Long: `Serves team touchdown projections, player red-zone usage, and anytime-TD
player odds over HTTP, refreshing play-by-play data on a cron schedule.
Also exposes health probes, Prometheus metrics, and an optional websocket
feed of refresh events.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configFile)
		if err != nil {
			return err
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func runServer() error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"season":      cfg.Sources.PlayByPlay.Season,
		"version":     Version,
	}).Info("Gridiron Edge API starting")

	metrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database is optional; it only backs snapshot archiving.
	var (
		db    *database.DB
		repos *repository.Repositories
	)
	if cfg.Database.Enabled {
		var err error
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		repos, err = repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
		appLog.Info("Database connection established")
	}

	srcLog := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	sources, err := datasource.NewFactory(cfg, srcLog).NewSources()
	if err != nil {
		return fmt.Errorf("failed to create data sources: %w", err)
	}

	store := snapshot.NewStore()
	audit := logger.NewAuditLogger(appLog)

	refreshSvc := service.NewRefreshService(
		sources,
		store,
		pipeline.NewTeamStatsCalculator(cfg.Pipeline.MinDrivePlays),
		service.NewDataValidator(log.New(os.Stdout, "validator: ", log.LstdFlags)),
		cfg.Sources.PlayByPlay.Season,
		time.Duration(cfg.Refresh.TimeoutMinutes)*time.Minute,
		audit,
		logger.NewComponentLogger(appLog, "refresh"),
	)

	analysisSvc := service.NewAnalysisService(
		store,
		sources.Odds,
		service.NewWeekResolver(logger.NewComponentLogger(appLog, "weeks")),
		service.PipelineParams(cfg.Pipeline),
		service.BaselineFromConfig(cfg.Pipeline.Baseline),
		audit,
		logger.NewComponentLogger(appLog, "analysis"),
	)

	if cfg.Refresh.ArchiveEnabled {
		if repos == nil {
			return fmt.Errorf("refresh.archive_enabled requires database.enabled")
		}
		refreshSvc.SetArchiver(repository.NewSnapshotArchiver(repos, logger.NewComponentLogger(appLog, "archiver")))
	}

	apiSrv := server.New(cfg.Server, analysisSvc, refreshSvc, logger.NewComponentLogger(appLog, "server"))
	apiSrv.SetPlayerOddsEnabled(cfg.Features.PlayerOddsEnabled)

	if cfg.Features.WebsocketEnabled {
		hub := server.NewHub(logger.NewComponentLogger(appLog, "stream"))
		refreshSvc.SetNotifier(hub)
		apiSrv.SetHub(hub)
	}

	sched := scheduler.NewScheduler(refreshSvc, logger.NewComponentLogger(appLog, "scheduler"))
	if err := sched.ScheduleRefresh(cfg.Refresh.Cron); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	apiSrv.SetScheduler(sched)

	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Health.Port),
		Logger:      appLog,
		Snapshots:   store,
	}
	if db != nil {
		healthCfg.DB = db
	}
	healthSrv := health.NewServer(healthCfg)
	if err := healthSrv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: metricsMux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server listening")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	go func() {
		if err := apiSrv.Start(); err != nil {
			appLog.WithError(err).Fatal("API server failed")
		}
	}()

	if cfg.Features.RefreshOnStartup {
		go func() {
			if _, err := refreshSvc.Refresh(ctx, "startup"); err != nil {
				appLog.WithError(err).Error("Startup refresh failed")
			}
		}()
	}

	healthSrv.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"api_port":    cfg.Server.Port,
		"health_port": cfg.Health.Port,
		"cron":        cfg.Refresh.Cron,
		"websocket":   cfg.Features.WebsocketEnabled,
		"archive":     cfg.Refresh.ArchiveEnabled,
	}).Info("Gridiron Edge API started")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Error during API server shutdown")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error during metrics server shutdown")
		}
	}
	if err := healthSrv.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during health server shutdown")
	}

	appLog.Info("Gridiron Edge API shut down successfully")
	return nil
}
