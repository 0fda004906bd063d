package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/pipeline"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

type fakeOddsSource struct {
	result *datasource.OddsResult
	err    error
	calls  int
}

func (f *fakeOddsSource) FetchLines(ctx context.Context) (*datasource.OddsResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeOddsSource) Name() string { return "fake-odds" }

func scrimmagePlay(game string, week, drive int, offense, defense string, yards float64) models.Play {
	return models.Play{
		GameID:      game,
		Season:      2025,
		Week:        week,
		SeasonType:  "REG",
		OffenseTeam: offense,
		DefenseTeam: defense,
		Drive:       intPtr(drive),
		YardsToGoal: floatPtr(yards),
		IsRush:      true,
	}
}

// analysisPlays builds a two-team season: KC with two red-zone touchdown
// drives, BUF with one scoring and one empty red-zone drive.
func analysisPlays() []models.Play {
	p1 := scrimmagePlay("g1", 1, 5, "KC", "BUF", 15)
	p1.RusherID, p1.RusherName = "00-0036389", "I.Pacheco"

	p2 := scrimmagePlay("g1", 1, 5, "KC", "BUF", 8)
	p2.RusherID, p2.RusherName = "00-0036389", "I.Pacheco"
	p2.IsTouchdown = true

	p3 := scrimmagePlay("g1", 1, 8, "KC", "BUF", 18)
	p3.IsRush, p3.IsPass = false, true
	p3.ReceiverID, p3.ReceiverName = "00-0030506", "T.Kelce"

	p4 := scrimmagePlay("g1", 1, 8, "KC", "BUF", 3)
	p4.IsRush, p4.IsPass = false, true
	p4.ReceiverID, p4.ReceiverName = "00-0030506", "T.Kelce"
	p4.IsTouchdown = true

	q1 := scrimmagePlay("g1", 1, 2, "BUF", "KC", 12)
	q1.RusherID, q1.RusherName = "00-0038542", "J.Cook"

	q2 := scrimmagePlay("g1", 1, 2, "BUF", "KC", 2)
	q2.RusherID, q2.RusherName = "00-0038542", "J.Cook"
	q2.IsTouchdown = true

	q3 := scrimmagePlay("g2", 2, 3, "BUF", "MIA", 19)
	q3.IsRush, q3.IsPass = false, true
	q3.ReceiverID, q3.ReceiverName = "00-0037247", "K.Shakir"

	q4 := scrimmagePlay("g2", 2, 3, "BUF", "MIA", 10)
	q4.RusherID, q4.RusherName = "00-0038542", "J.Cook"

	return []models.Play{p1, p2, p3, p4, q1, q2, q3, q4}
}

func week3Line() models.MarketLine {
	return models.MarketLine{
		EventID:    "evt-buf-kc",
		Bookmaker:  "fanduel",
		AwayTeam:   "BUF",
		HomeTeam:   "KC",
		Total:      decimal.NewFromFloat(47.0),
		AwaySpread: decimal.NewFromFloat(6.5),
		HomeSpread: decimal.NewFromFloat(-6.5),
	}
}

func week3Schedule() []models.ScheduledGame {
	buf := gameOn(3, "2025-09-21")
	sea := gameOn(3, "2025-09-21")
	sea.GameID = "2025_03_DEN_SEA"
	sea.AwayTeam, sea.HomeTeam = "DEN", "SEA"
	return []models.ScheduledGame{buf, sea}
}

func newAnalysisFixture(schedule []models.ScheduledGame, odds *fakeOddsSource) (*AnalysisService, *snapshot.Snapshot) {
	plays := analysisPlays()
	stats := pipeline.NewTeamStatsCalculator(2).SeasonStats(plays, 2025)
	snap := snapshot.New(2025, plays, stats, schedule)

	store := snapshot.NewStore()
	store.Publish(snap)

	svc := NewAnalysisService(
		store,
		odds,
		NewWeekResolver(testEntry()),
		pipeline.DefaultParams(),
		models.DefaultLeagueBaseline(),
		logger.NewAuditLogger(quietLogger()),
		testEntry(),
	)
	return svc, snap
}

func TestAnalysisRequiresSnapshot(t *testing.T) {
	svc := NewAnalysisService(
		snapshot.NewStore(),
		&fakeOddsSource{},
		NewWeekResolver(testEntry()),
		pipeline.DefaultParams(),
		models.DefaultLeagueBaseline(),
		logger.NewAuditLogger(quietLogger()),
		testEntry(),
	)

	_, err := svc.PlayerUsage("KC")
	assert.ErrorIs(t, err, models.ErrDataUnavailable)

	_, err = svc.AllPlayerUsage()
	assert.ErrorIs(t, err, models.ErrDataUnavailable)

	_, err = svc.TeamAnalysis(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)

	_, err = svc.PlayerOdds(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)

	assert.False(t, svc.Status().Loaded)
}

func TestPlayerUsageShares(t *testing.T) {
	svc, _ := newAnalysisFixture(week3Schedule(), &fakeOddsSource{})

	usage, err := svc.PlayerUsage("kc")

	require.NoError(t, err)
	assert.Equal(t, "KC", usage.Team)
	assert.Equal(t, 2025, usage.Season)
	assert.Equal(t, 4, usage.RedZonePlays)
	assert.Equal(t, 2, usage.TouchdownPlays)
	require.Len(t, usage.Players, 2)

	for _, p := range usage.Players {
		assert.InDelta(t, 0.5, p.RZUsageShare, 1e-9)
		assert.InDelta(t, 0.5, p.TDShare, 1e-9)
	}
}

func TestPlayerUsageUnknownTeam(t *testing.T) {
	svc, _ := newAnalysisFixture(week3Schedule(), &fakeOddsSource{})

	_, err := svc.PlayerUsage("SEA")

	assert.ErrorIs(t, err, models.ErrUnknownTeam)
}

func TestAllPlayerUsage(t *testing.T) {
	svc, _ := newAnalysisFixture(week3Schedule(), &fakeOddsSource{})

	usages, err := svc.AllPlayerUsage()

	require.NoError(t, err)
	require.Len(t, usages, 2)
	assert.Equal(t, "BUF", usages[0].Team)
	assert.Equal(t, "KC", usages[1].Team)
	assert.NotEmpty(t, usages[0].Players)
}

func TestTeamAnalysis(t *testing.T) {
	odds := &fakeOddsSource{result: &datasource.OddsResult{
		Lines:   []models.MarketLine{week3Line()},
		Skipped: 1,
	}}
	svc, snap := newAnalysisFixture(week3Schedule(), odds)

	analysis, err := svc.TeamAnalysis(context.Background(), intPtr(3))

	require.NoError(t, err)
	assert.Equal(t, snap.ID, analysis.SnapshotID)
	assert.Equal(t, 2025, analysis.Season)
	assert.Equal(t, 3, analysis.Week)

	require.Len(t, analysis.Games, 1)
	game := analysis.Games[0]
	assert.Equal(t, "BUF@KC", game.GameKey)
	assert.Equal(t, "fanduel", game.Bookmaker)
	assert.InDelta(t, 47.0, game.Total, 1e-9)
	assert.InDelta(t, -6.5, game.HomeSpread, 1e-9)

	assert.Equal(t, "KC", game.Home.Team)
	assert.InDelta(t, 26.75, game.Home.ImpliedPoints, 1e-9)
	assert.InDelta(t, 2.87, game.Home.BaselineTDs, 1e-9)
	assert.Greater(t, game.Home.ProjectedTDs, 0.0)

	assert.Equal(t, "BUF", game.Away.Team)
	assert.InDelta(t, 20.25, game.Away.ImpliedPoints, 1e-9)
	assert.InDelta(t, 2.17, game.Away.BaselineTDs, 1e-9)
	assert.Greater(t, game.Away.ProjectedTDs, 0.0)

	require.Len(t, analysis.Skipped, 1)
	assert.Equal(t, "DEN@SEA", analysis.Skipped[0].GameKey)
	assert.Equal(t, skipReasonNoLine, analysis.Skipped[0].Reason)

	assert.Equal(t, 1, odds.calls)
}

func TestTeamAnalysisMarketFailure(t *testing.T) {
	odds := &fakeOddsSource{err: errors.New("odds api unreachable")}
	svc, _ := newAnalysisFixture(week3Schedule(), odds)

	_, err := svc.TeamAnalysis(context.Background(), intPtr(3))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch market lines")
}

func TestTeamAnalysisScheduleFallback(t *testing.T) {
	odds := &fakeOddsSource{result: &datasource.OddsResult{
		Lines: []models.MarketLine{week3Line()},
	}}
	svc, _ := newAnalysisFixture(nil, odds)

	analysis, err := svc.TeamAnalysis(context.Background(), intPtr(3))

	require.NoError(t, err)
	require.Len(t, analysis.Games, 1)
	assert.Equal(t, "BUF@KC", analysis.Games[0].GameKey)
	assert.Empty(t, analysis.Skipped)
}

func TestPlayerOddsBoard(t *testing.T) {
	odds := &fakeOddsSource{result: &datasource.OddsResult{
		Lines:   []models.MarketLine{week3Line()},
		Skipped: 1,
	}}
	svc, snap := newAnalysisFixture(week3Schedule(), odds)

	board, err := svc.PlayerOdds(context.Background(), intPtr(3))

	require.NoError(t, err)
	assert.Equal(t, snap.ID, board.SnapshotID)
	assert.Equal(t, 3, board.Week)
	require.Len(t, board.Games, 1)

	game := board.Games[0]
	assert.Equal(t, "BUF@KC", game.GameKey)
	assert.Equal(t, "BUF", game.Away.Team)
	assert.Equal(t, "KC", game.Away.Opponent)
	assert.Greater(t, game.Away.ProjectedTDs, 0.0)

	require.Len(t, game.Away.Players, 2)
	require.Len(t, game.Home.Players, 2)

	// Cook's combined share dwarfs Shakir's, so he leads the board
	assert.Equal(t, "J.Cook", game.Away.Players[0].PlayerName)

	for _, side := range []models.TeamPlayerOdds{game.Away, game.Home} {
		var allocated float64
		for _, entry := range side.Players {
			assert.Greater(t, entry.Probability, 0.0)
			assert.LessOrEqual(t, entry.Probability, 1.0)
			assert.NotZero(t, entry.AmericanOdds)
			assert.Greater(t, entry.ExpectedTDs, 0.0)
			allocated += entry.Allocation
		}
		assert.InDelta(t, 1.0, allocated, 0.01)
	}

	require.Len(t, board.Skipped, 1)
}

func TestStatusReportsSnapshot(t *testing.T) {
	svc, snap := newAnalysisFixture(week3Schedule(), &fakeOddsSource{})

	status := svc.Status()

	assert.True(t, status.Loaded)
	assert.Equal(t, snap.ID.String(), status.SnapshotID)
	assert.Equal(t, 2025, status.Season)
	assert.Equal(t, 8, status.Plays)
	assert.Equal(t, 2, status.Teams)
	assert.Equal(t, 2, status.MaxCompletedWeek)
	assert.NotZero(t, status.CurrentWeek)
	require.NotNil(t, status.LastRefresh)
	assert.Equal(t, snap.FetchedAt, *status.LastRefresh)
}
