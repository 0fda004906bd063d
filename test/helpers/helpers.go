// Package helpers provides fixture builders and mock upstream servers shared
// by the integration and e2e suites.
package helpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// PlayCSVHeader matches the play-by-play export columns the parser reads.
const PlayCSVHeader = "game_id,season,week,season_type,posteam,defteam,fixed_drive,yardline_100," +
	"rush_attempt,pass_attempt,touchdown,two_point_attempt," +
	"rusher_player_id,rusher_player_name,receiver_player_id,receiver_player_name"

// ScheduleCSVHeader matches the schedule export columns the parser reads.
const ScheduleCSVHeader = "game_id,season,week,gameday,away_team,home_team"

// PlayCSV assembles a play-by-play export body from data rows.
func PlayCSV(rows ...string) string {
	return PlayCSVHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

// ScheduleCSV assembles a schedule export body from data rows.
func ScheduleCSV(rows ...string) string {
	return ScheduleCSVHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

// RushRow builds one rushing play row for the play-by-play export.
func RushRow(gameID string, season, week int, offense, defense string, drive int, yardline float64, touchdown bool, playerID, playerName string) string {
	return fmt.Sprintf("%s,%d,%d,REG,%s,%s,%d,%.1f,1,0,%s,0,%s,%s,,",
		gameID, season, week, offense, defense, drive, yardline, flag(touchdown), playerID, playerName)
}

// PassRow builds one passing play row for the play-by-play export.
func PassRow(gameID string, season, week int, offense, defense string, drive int, yardline float64, touchdown bool, receiverID, receiverName string) string {
	return fmt.Sprintf("%s,%d,%d,REG,%s,%s,%d,%.1f,0,1,%s,0,,,%s,%s",
		gameID, season, week, offense, defense, drive, yardline, flag(touchdown), receiverID, receiverName)
}

// ScheduleRow builds one schedule export row.
func ScheduleRow(gameID string, season, week int, gameday, away, home string) string {
	return fmt.Sprintf("%s,%d,%d,%s,%s,%s", gameID, season, week, gameday, away, home)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// NewSeasonServer serves a play-by-play export and a schedule export the way
// the data release host does. Wire the returned server's URL as the
// play-by-play base URL and URL+"/schedule.csv" as the schedule URL.
func NewSeasonServer(t *testing.T, season int, playBody, scheduleBody string) *httptest.Server {
	t.Helper()

	playPath := fmt.Sprintf("/pbp/play_by_play_%d.csv", season)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case playPath:
			w.Header().Set("Content-Type", "text/csv")
			fmt.Fprint(w, playBody)
		case "/schedule.csv":
			w.Header().Set("Content-Type", "text/csv")
			fmt.Fprint(w, scheduleBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// NewOddsServer serves a canned odds vendor payload with the quota header set.
func NewOddsServer(t *testing.T, body string, remaining int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/sports/americanfootball_nfl/odds") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Requests-Remaining", fmt.Sprintf("%d", remaining))
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// OddsEvent builds one vendor event with totals and spreads priced by a single
// bookmaker. Team arguments are full names ("Buffalo Bills"), spread is the
// away team's point.
func OddsEvent(id, bookmaker, awayName, homeName, commence string, total, awaySpread float64) string {
	return fmt.Sprintf(`{
  "id": %q,
  "sport_key": "americanfootball_nfl",
  "commence_time": %q,
  "home_team": %q,
  "away_team": %q,
  "bookmakers": [
    {
      "key": %q,
      "title": %q,
      "markets": [
        {"key": "totals", "outcomes": [
          {"name": "Over", "price": -110, "point": %g},
          {"name": "Under", "price": -110, "point": %g}
        ]},
        {"key": "spreads", "outcomes": [
          {"name": %q, "price": -110, "point": %g},
          {"name": %q, "price": -110, "point": %g}
        ]}
      ]
    }
  ]
}`, id, commence, homeName, awayName, bookmaker, bookmaker, total, total, awayName, awaySpread, homeName, -awaySpread)
}

// OddsBody wraps events into the vendor's top-level JSON array.
func OddsBody(events ...string) string {
	return "[" + strings.Join(events, ",") + "]"
}
