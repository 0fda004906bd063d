package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/gridiron-edge/internal/models"
)

const nflverseSourceName = "nflverse"

// playColumns are the play-by-play export columns the pipeline depends on.
// Column order in the export changes between releases, so lookup is by name.
var playColumns = []string{
	"game_id",
	"season",
	"week",
	"season_type",
	"posteam",
	"defteam",
	"fixed_drive",
	"yardline_100",
	"rush_attempt",
	"pass_attempt",
	"touchdown",
	"two_point_attempt",
	"rusher_player_id",
	"rusher_player_name",
	"receiver_player_id",
	"receiver_player_name",
}

// scheduleColumns are the schedule export columns needed for week resolution
// and matchup listing.
var scheduleColumns = []string{
	"game_id",
	"season",
	"week",
	"gameday",
	"away_team",
	"home_team",
}

// NFLVerseClient implements PlayByPlaySource and ScheduleSource against the
// nflverse data release CSVs
type NFLVerseClient struct {
	httpClient  *RateLimitedHTTPClient
	baseURL     string
	scheduleURL string
	logger      *log.Logger
}

// NewNFLVerseClient creates a new nflverse release data client
func NewNFLVerseClient(httpClient *RateLimitedHTTPClient, baseURL, scheduleURL string, logger *log.Logger) *NFLVerseClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &NFLVerseClient{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		scheduleURL: scheduleURL,
		logger:      logger,
	}
}

// FetchPlays retrieves all plays recorded for the given season
func (c *NFLVerseClient) FetchPlays(ctx context.Context, season int) ([]models.Play, error) {
	url := fmt.Sprintf("%s/pbp/play_by_play_%d.csv", c.baseURL, season)

	body, err := c.download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	plays, err := parsePlayCSV(body, c.logger)
	if err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeInvalidData, "failed to parse play-by-play export", err)
	}

	c.logger.Printf("Fetched %d plays for season %d", len(plays), season)
	return plays, nil
}

// FetchSchedule retrieves the scheduled games for the given season
func (c *NFLVerseClient) FetchSchedule(ctx context.Context, season int) ([]models.ScheduledGame, error) {
	body, err := c.download(ctx, c.scheduleURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	games, err := parseScheduleCSV(body, season, c.logger)
	if err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeInvalidData, "failed to parse schedule export", err)
	}

	c.logger.Printf("Fetched %d scheduled games for season %d", len(games), season)
	return games, nil
}

// Name returns the data source name
func (c *NFLVerseClient) Name() string {
	return nflverseSourceName
}

// download fetches a release file, returning the body stream on success
func (c *NFLVerseClient) download(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeNetworkError, fmt.Sprintf("failed to download %s", url), err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeNotFound, fmt.Sprintf("release file not found: %s", url), nil)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, url), nil)
	}

	return resp.Body, nil
}

// parsePlayCSV streams a play-by-play export into Play records. Rows that do
// not parse as CSV are skipped; cell-level gaps become nil or false fields.
func parsePlayCSV(r io.Reader, logger *log.Logger) ([]models.Play, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := indexColumns(header, playColumns)
	if err != nil {
		return nil, err
	}

	var plays []models.Play
	badRows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				badRows++
				continue
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		plays = append(plays, playFromRecord(idx, record))
	}

	if badRows > 0 && logger != nil {
		logger.Printf("Skipped %d malformed play-by-play rows", badRows)
	}

	return plays, nil
}

// parseScheduleCSV streams a schedule export, keeping only the requested season
func parseScheduleCSV(r io.Reader, season int, logger *log.Logger) ([]models.ScheduledGame, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := indexColumns(header, scheduleColumns)
	if err != nil {
		return nil, err
	}

	var games []models.ScheduledGame
	badRows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				badRows++
				continue
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		rowSeason, ok := parseIntCell(idx.cell(record, "season"))
		if !ok || rowSeason != season {
			continue
		}

		gameDay, err := time.Parse("2006-01-02", idx.cell(record, "gameday"))
		if err != nil {
			badRows++
			continue
		}

		game := models.ScheduledGame{
			GameID:   idx.cell(record, "game_id"),
			Season:   rowSeason,
			GameDay:  gameDay,
			AwayTeam: idx.cell(record, "away_team"),
			HomeTeam: idx.cell(record, "home_team"),
		}
		if week, ok := parseIntCell(idx.cell(record, "week")); ok {
			game.Week = week
		}
		games = append(games, game)
	}

	if badRows > 0 && logger != nil {
		logger.Printf("Skipped %d malformed schedule rows", badRows)
	}

	return games, nil
}

// playFromRecord converts one CSV row into a Play
func playFromRecord(idx columnIndex, record []string) models.Play {
	p := models.Play{
		GameID:            idx.cell(record, "game_id"),
		SeasonType:        idx.cell(record, "season_type"),
		OffenseTeam:       idx.cell(record, "posteam"),
		DefenseTeam:       idx.cell(record, "defteam"),
		IsRush:            parseFlagCell(idx.cell(record, "rush_attempt")),
		IsPass:            parseFlagCell(idx.cell(record, "pass_attempt")),
		IsTouchdown:       parseFlagCell(idx.cell(record, "touchdown")),
		IsTwoPointAttempt: parseFlagCell(idx.cell(record, "two_point_attempt")),
		RusherID:          idx.cell(record, "rusher_player_id"),
		RusherName:        idx.cell(record, "rusher_player_name"),
		ReceiverID:        idx.cell(record, "receiver_player_id"),
		ReceiverName:      idx.cell(record, "receiver_player_name"),
	}

	if season, ok := parseIntCell(idx.cell(record, "season")); ok {
		p.Season = season
	}
	if week, ok := parseIntCell(idx.cell(record, "week")); ok {
		p.Week = week
	}
	if drive, ok := parseIntCell(idx.cell(record, "fixed_drive")); ok {
		d := drive
		p.Drive = &d
	}
	if yards, ok := parseFloatCell(idx.cell(record, "yardline_100")); ok {
		y := yards
		p.YardsToGoal = &y
	}

	return p
}

// columnIndex maps export column names to their positions
type columnIndex map[string]int

// indexColumns builds the name lookup and verifies every required column exists
func indexColumns(header []string, required []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// cell returns the trimmed value for a named column, or "" when absent
func (idx columnIndex) cell(record []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseIntCell parses an integer cell. Exports sometimes carry integers in
// float form ("7.0"), so a float parse is the fallback.
func parseIntCell(s string) (int, bool) {
	if s == "" || s == "NA" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// parseFloatCell parses a numeric cell, reporting absence for empty or NA values
func parseFloatCell(s string) (float64, bool) {
	if s == "" || s == "NA" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseFlagCell parses a 0/1 indicator cell; absent cells are false
func parseFlagCell(s string) bool {
	f, ok := parseFloatCell(s)
	return ok && f != 0
}
