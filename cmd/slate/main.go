// Package main provides a console view of the week's touchdown slate.
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
	"github.com/yourusername/gridiron-edge/internal/models"
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
	week       int
	topPlayers int
	archive    bool
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&week, "week", "w", 0, "Week to project (0 = next unplayed week)")
	rootCmd.Flags().IntVar(&topPlayers, "top", 5, "Players to list per team (0 = all)")
	rootCmd.Flags().BoolVar(&archive, "archive", false, "Persist the snapshot, projections, and player odds to the database")
}

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "Print the week's touchdown projections and player odds",
	Long: `Refreshes the season dataset, projects team touchdowns for the week's
games from current market lines, and prints the anytime-TD player board.`,
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
		return runSlate()
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

func runSlate() error {
	ctx := context.Background()

	srcLog := log.New(os.Stderr, "datasource: ", log.LstdFlags)
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
		service.NewDataValidator(log.New(os.Stderr, "validator: ", log.LstdFlags)),
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

	var repos *repository.Repositories
	if archive {
		if !cfg.Database.Enabled {
			return fmt.Errorf("--archive requires database.enabled in configuration")
		}
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		repos, err = repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
		refreshSvc.SetArchiver(repository.NewSnapshotArchiver(repos, logger.NewComponentLogger(appLog, "archiver")))
	}

	if _, err := refreshSvc.Refresh(ctx, "manual"); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	var weekOverride *int
	if week > 0 {
		weekOverride = &week
	}

	analysis, err := analysisSvc.TeamAnalysis(ctx, weekOverride)
	if err != nil {
		return fmt.Errorf("team analysis failed: %w", err)
	}

	var board *models.WeekPlayerOdds
	if cfg.Features.PlayerOddsEnabled {
		board, err = analysisSvc.PlayerOdds(ctx, weekOverride)
		if err != nil {
			return fmt.Errorf("player odds failed: %w", err)
		}
	}

	displaySlate(analysis, board)

	if archive {
		if err := archiveSlate(ctx, repos, audit, analysis, board); err != nil {
			return err
		}
	}

	return nil
}

func displaySlate(analysis *models.WeekAnalysis, board *models.WeekPlayerOdds) {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════════╗")
	fmt.Printf("║        Anytime-Touchdown Slate — Season %d, Week %-2d          ║\n", analysis.Season, analysis.Week)
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")

	fmt.Printf("\nSnapshot %s, generated %s\n", analysis.SnapshotID, analysis.GeneratedAt.UTC().Format(time.RFC3339))

	if len(analysis.Games) == 0 {
		fmt.Println("\nNo games with market lines this week.")
	}
	for _, g := range analysis.Games {
		fmt.Printf("\n%s  [%s  o/u %.1f]\n", g.GameKey, g.Bookmaker, g.Total)
		printProjection(g.Away, g.AwaySpread)
		printProjection(g.Home, g.HomeSpread)
	}

	if len(analysis.Skipped) > 0 {
		fmt.Println("\nSkipped games:")
		for _, s := range analysis.Skipped {
			fmt.Printf("  %s @ %s: %s\n", s.AwayTeam, s.HomeTeam, s.Reason)
		}
	}

	if board == nil {
		fmt.Println()
		return
	}

	fmt.Println("\nAnytime-touchdown board:")
	for _, g := range board.Games {
		fmt.Printf("\n%s\n", g.GameKey)
		printPrices(g.Away)
		printPrices(g.Home)
	}
	fmt.Println()
}

func printProjection(side models.TeamProjection, spread float64) {
	fmt.Printf("  %-3s %+5.1f  implied %5.2f pts  baseline %.2f TDs  projected %.2f TDs",
		side.Team, spread, side.ImpliedPoints, side.BaselineTDs, side.ProjectedTDs)
	if side.Matchup != nil && side.Matchup.Total != nil {
		fmt.Printf("  (edge %+.1f%%)", *side.Matchup.Total)
	}
	fmt.Println()
}

func printPrices(side models.TeamPlayerOdds) {
	fmt.Printf("  %s (%.2f team TDs)\n", side.Team, side.ProjectedTDs)

	players := side.Players
	if topPlayers > 0 && len(players) > topPlayers {
		players = players[:topPlayers]
	}
	for _, p := range players {
		note := ""
		if p.Degenerate {
			note = "  [floor]"
		}
		multi := pipeline.AtLeastProbability(2, p.ExpectedTDs)
		fmt.Printf("    %-24s alloc %4.1f%%  xTD %.2f  prob %5.1f%%  2+ %4.1f%%  %+d%s\n",
			p.PlayerName, p.Allocation*100, p.ExpectedTDs, p.Probability*100, multi*100, p.AmericanOdds, note)
	}
}

func archiveSlate(ctx context.Context, repos *repository.Repositories, audit *logger.AuditLogger, analysis *models.WeekAnalysis, board *models.WeekPlayerOdds) error {
	if err := repos.Projections.SaveWeekAnalysis(ctx, analysis); err != nil {
		return fmt.Errorf("failed to archive projections: %w", err)
	}

	players := 0
	if board != nil {
		if err := repos.PlayerOdds.SaveWeekOdds(ctx, board); err != nil {
			return fmt.Errorf("failed to archive player odds: %w", err)
		}
		for _, g := range board.Games {
			players += len(g.Away.Players) + len(g.Home.Players)
		}
	}

	audit.LogArchive(analysis.SnapshotID.String(), analysis.Week, len(analysis.Games), players)
	fmt.Printf("Archived week %d: %d games, %d priced players\n", analysis.Week, len(analysis.Games), players)
	return nil
}
