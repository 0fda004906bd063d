// Package main provides a one-shot dataset refresh command.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/pipeline"
	"github.com/yourusername/gridiron-edge/internal/repository"
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
	archive    bool
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&archive, "archive", false, "Persist the refreshed snapshot to the database")
}

var rootCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the season dataset and rebuild team stats once",
	Long: `Downloads the configured season's play-by-play data and schedule,
recomputes red-zone team stats, and reports the resulting snapshot.
With --archive the snapshot is also written to the database.`,
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
		return runRefresh()
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

func runRefresh() error {
	appLog.WithFields(logrus.Fields{
		"season":  cfg.Sources.PlayByPlay.Season,
		"archive": archive,
	}).Info("One-shot refresh starting")

	ctx := context.Background()

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

	if archive {
		if !cfg.Database.Enabled {
			return fmt.Errorf("--archive requires database.enabled in configuration")
		}
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
		refreshSvc.SetArchiver(repository.NewSnapshotArchiver(repos, logger.NewComponentLogger(appLog, "archiver")))
	}

	start := time.Now()
	snap, err := refreshSvc.Refresh(ctx, "manual")
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	appLog.WithFields(logrus.Fields{
		"snapshot_id":        snap.ID.String(),
		"season":             snap.Season,
		"plays":              len(snap.Plays),
		"teams":              len(snap.Teams),
		"max_completed_week": snap.MaxCompletedWeek,
		"duration":           time.Since(start).Round(time.Millisecond).String(),
	}).Info("Refresh complete")

	return nil
}
