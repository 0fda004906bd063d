package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/pipeline"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

const skipReasonNoLine = "no complete market line"

// PipelineParams maps pipeline configuration onto stage parameters. Fields
// the config does not carry keep their defaults.
func PipelineParams(cfg config.PipelineConfig) pipeline.Params {
	p := pipeline.DefaultParams()
	p.MinDrivePlays = cfg.MinDrivePlays
	p.EdgeWeight = cfg.EdgeWeight
	p.AdvantageClamp = cfg.AdvantageClamp
	p.FieldGoalFactor = cfg.FieldGoalFactor
	p.UsageWeight = cfg.UsageWeight
	p.AllocationFloor = cfg.AllocationFloor
	return p
}

// BaselineFromConfig maps baseline configuration onto the model type.
func BaselineFromConfig(cfg config.BaselineConfig) models.LeagueBaseline {
	return models.LeagueBaseline{
		RedZoneScoring:   cfg.RedZoneScoring,
		RedZoneAllow:     cfg.RedZoneAllow,
		AllDrivesScoring: cfg.AllDrivesScoring,
		AllDrivesAllow:   cfg.AllDrivesAllow,
	}
}

// Status describes what the service is currently able to serve.
type Status struct {
	Loaded           bool       `json:"data_loaded"`
	SnapshotID       string     `json:"snapshot_id,omitempty"`
	Season           int        `json:"season,omitempty"`
	Plays            int        `json:"plays,omitempty"`
	Teams            int        `json:"teams,omitempty"`
	MaxCompletedWeek int        `json:"max_completed_week,omitempty"`
	CurrentWeek      int        `json:"current_week,omitempty"`
	LastRefresh      *time.Time `json:"last_refresh,omitempty"`
}

// AnalysisService answers every read: usage breakdowns, weekly matchup
// projections, and the anytime-touchdown board. All reads run against the
// current snapshot; market lines are the only data fetched per request.
type AnalysisService struct {
	store     *snapshot.Store
	odds      datasource.OddsSource
	weeks     *WeekResolver
	drives    *pipeline.DriveAggregator
	usage     *pipeline.UsageCalculator
	advantage *pipeline.AdvantageModel
	blender   *pipeline.ProjectionBlender
	allocator *pipeline.OddsAllocator
	audit     *logger.AuditLogger
	log       *logrus.Entry
}

// NewAnalysisService creates an analysis service with pipeline stages built
// from the given parameters.
func NewAnalysisService(
	store *snapshot.Store,
	odds datasource.OddsSource,
	weeks *WeekResolver,
	params pipeline.Params,
	baseline models.LeagueBaseline,
	audit *logger.AuditLogger,
	log *logrus.Entry,
) *AnalysisService {
	return &AnalysisService{
		store:     store,
		odds:      odds,
		weeks:     weeks,
		drives:    pipeline.NewDriveAggregator(params.MinDrivePlays),
		usage:     pipeline.NewUsageCalculator(),
		advantage: pipeline.NewAdvantageModel(baseline),
		blender:   pipeline.NewProjectionBlender(params),
		allocator: pipeline.NewOddsAllocator(params),
		audit:     audit,
		log:       log,
	}
}

// Status reports the current snapshot's vitals for health and root pages.
func (s *AnalysisService) Status() Status {
	snap, ok := s.store.Current()
	if !ok {
		return Status{}
	}
	fetched := snap.FetchedAt
	return Status{
		Loaded:           true,
		SnapshotID:       snap.ID.String(),
		Season:           snap.Season,
		Plays:            len(snap.Plays),
		Teams:            len(snap.Teams),
		MaxCompletedWeek: snap.MaxCompletedWeek,
		CurrentWeek:      s.weeks.CurrentWeek(snap),
		LastRefresh:      &fetched,
	}
}

// PlayerUsage builds one team's red-zone and touchdown share breakdown.
// Returns models.ErrUnknownTeam when the team never appears on offense in
// the current season.
func (s *AnalysisService) PlayerUsage(team string) (*models.TeamUsage, error) {
	snap, ok := s.store.Current()
	if !ok {
		return nil, models.ErrDataUnavailable
	}

	team = strings.ToUpper(strings.TrimSpace(team))
	if !snap.HasTeam(team) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownTeam, team)
	}

	return s.teamUsage(snap, team), nil
}

// AllPlayerUsage builds the usage breakdown for every offense in the
// snapshot, ordered by team abbreviation.
func (s *AnalysisService) AllPlayerUsage() ([]models.TeamUsage, error) {
	snap, ok := s.store.Current()
	if !ok {
		return nil, models.ErrDataUnavailable
	}

	usages := make([]models.TeamUsage, 0, len(snap.Teams))
	for _, team := range snap.Teams {
		usages = append(usages, *s.teamUsage(snap, team))
	}
	return usages, nil
}

func (s *AnalysisService) teamUsage(snap *snapshot.Snapshot, team string) *models.TeamUsage {
	rz := s.drives.RedZonePlays(snap.Plays, team)
	td := s.usage.TouchdownPlays(snap.Plays, team)
	return &models.TeamUsage{
		Team:           team,
		Season:         snap.Season,
		RedZonePlays:   rz.TotalPlays,
		TouchdownPlays: td.TotalPlays,
		Players:        s.usage.Shares(rz, td),
		GeneratedAt:    time.Now().UTC(),
	}
}

// TeamAnalysis projects every game of the target week: market-implied
// baselines tilted by matchup advantages, ordered from the largest edge
// down. weekOverride forces a specific week; nil resolves the current one.
// Scheduled games with no complete market line are reported as skipped.
func (s *AnalysisService) TeamAnalysis(ctx context.Context, weekOverride *int) (*models.WeekAnalysis, error) {
	snap, ok := s.store.Current()
	if !ok {
		return nil, models.ErrDataUnavailable
	}

	start := time.Now()
	week := s.resolveWeek(snap, weekOverride)

	lines, skippedLines, err := s.fetchLines(ctx, week)
	if err != nil {
		return nil, err
	}

	matchups := s.weekMatchups(snap, week, lines)

	games := make([]models.GameProjection, 0, len(matchups))
	skipped := make([]models.SkippedGame, 0)
	for _, m := range matchups {
		line, ok := lines[models.GameKey(m.AwayTeam, m.HomeTeam)]
		if !ok {
			skipped = append(skipped, models.SkippedGame{
				GameKey:  m.GameKey(),
				AwayTeam: m.AwayTeam,
				HomeTeam: m.HomeTeam,
				Reason:   skipReasonNoLine,
			})
			continue
		}

		awayMatchup := s.advantage.Matchup(m.AwayTeam, m.HomeTeam, snap.Stats)
		homeMatchup := s.advantage.Matchup(m.HomeTeam, m.AwayTeam, snap.Stats)
		games = append(games, s.blender.Game(week, line, awayMatchup, homeMatchup))
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].MaxAdvantage() > games[j].MaxAdvantage()
	})

	metrics.RecordWeekAnalysis(strconv.Itoa(week), len(games), len(skipped), time.Since(start).Seconds())
	s.log.WithFields(logrus.Fields{
		"week":          week,
		"games":         len(games),
		"skipped":       len(skipped),
		"skipped_lines": skippedLines,
	}).Info("Week analysis built")

	return &models.WeekAnalysis{
		SnapshotID:  snap.ID,
		Season:      snap.Season,
		Week:        week,
		GeneratedAt: time.Now().UTC(),
		Games:       games,
		Skipped:     skipped,
	}, nil
}

// PlayerOdds prices every rostered scorer of the target week's games from
// their allocated slice of the team projection.
func (s *AnalysisService) PlayerOdds(ctx context.Context, weekOverride *int) (*models.WeekPlayerOdds, error) {
	snap, ok := s.store.Current()
	if !ok {
		return nil, models.ErrDataUnavailable
	}

	analysis, err := s.TeamAnalysis(ctx, weekOverride)
	if err != nil {
		return nil, err
	}

	games := make([]models.GamePlayerOdds, 0, len(analysis.Games))
	priced := 0
	for _, g := range analysis.Games {
		away := s.teamPlayerOdds(snap, g.Away, g.Home.Team)
		home := s.teamPlayerOdds(snap, g.Home, g.Away.Team)
		priced += len(away.Players) + len(home.Players)

		games = append(games, models.GamePlayerOdds{
			GameKey: g.GameKey,
			Week:    g.Week,
			Away:    away,
			Home:    home,
		})
	}

	metrics.RecordPlayersPriced(priced)

	return &models.WeekPlayerOdds{
		SnapshotID:  analysis.SnapshotID,
		Season:      analysis.Season,
		Week:        analysis.Week,
		GeneratedAt: time.Now().UTC(),
		Games:       games,
		Skipped:     analysis.Skipped,
	}, nil
}

func (s *AnalysisService) teamPlayerOdds(snap *snapshot.Snapshot, side models.TeamProjection, opponent string) models.TeamPlayerOdds {
	rz := s.drives.RedZonePlays(snap.Plays, side.Team)
	td := s.usage.TouchdownPlays(snap.Plays, side.Team)
	entries := s.allocator.Allocate(side.ProjectedTDs, s.usage.Shares(rz, td))

	for i := range entries {
		if entries[i].Degenerate {
			s.audit.LogDegeneratePrice(side.Team, entries[i].PlayerID, entries[i].ExpectedTDs)
			metrics.RecordDegeneratePrice()
		}
	}

	return models.TeamPlayerOdds{
		Team:         side.Team,
		Opponent:     opponent,
		ProjectedTDs: side.ProjectedTDs,
		Players:      entries,
	}
}

func (s *AnalysisService) resolveWeek(snap *snapshot.Snapshot, weekOverride *int) int {
	if weekOverride != nil && *weekOverride > 0 {
		return *weekOverride
	}
	return s.weeks.CurrentWeek(snap)
}

// fetchLines pulls the current market lines and indexes them by game key.
func (s *AnalysisService) fetchLines(ctx context.Context, week int) (map[string]models.MarketLine, int, error) {
	result, err := s.odds.FetchLines(ctx)
	if err != nil {
		metrics.RecordMarketFetch("failure", 0, false, nil)
		return nil, 0, fmt.Errorf("fetch market lines: %w", err)
	}

	s.audit.LogMarketFetch(week, len(result.Lines), result.Skipped, result.CacheHit)
	metrics.RecordMarketFetch("success", result.Skipped, result.CacheHit, result.QuotaRemaining)

	lines := make(map[string]models.MarketLine, len(result.Lines))
	for _, line := range result.Lines {
		lines[line.GameKey()] = line
	}
	return lines, result.Skipped, nil
}

// weekMatchups returns the week's slate from the schedule, falling back to
// the market's own games when no schedule is loaded.
func (s *AnalysisService) weekMatchups(snap *snapshot.Snapshot, week int, lines map[string]models.MarketLine) []models.ScheduledGame {
	matchups := MatchupsForWeek(snap.Schedule, week)
	if len(matchups) > 0 {
		return matchups
	}

	keys := make([]string, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	matchups = make([]models.ScheduledGame, 0, len(keys))
	for _, key := range keys {
		line := lines[key]
		matchups = append(matchups, models.ScheduledGame{
			Season:   snap.Season,
			Week:     week,
			GameDay:  line.CommenceTime,
			AwayTeam: line.AwayTeam,
			HomeTeam: line.HomeTeam,
		})
	}
	return matchups
}
