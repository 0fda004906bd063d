package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

func quietLogger() *logrus.Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return base
}

func testEntry() *logrus.Entry {
	return quietLogger().WithField("component", "test")
}

func gameOn(week int, day string) models.ScheduledGame {
	gameDay, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return models.ScheduledGame{
		GameID:   day,
		Season:   2025,
		Week:     week,
		GameDay:  gameDay,
		AwayTeam: "BUF",
		HomeTeam: "KC",
	}
}

func playsThroughWeek(maxWeek int) []models.Play {
	plays := make([]models.Play, 0, maxWeek)
	for w := 1; w <= maxWeek; w++ {
		plays = append(plays, models.Play{GameID: "g", Season: 2025, Week: w, OffenseTeam: "KC"})
	}
	return plays
}

func resolverAt(t *testing.T, utcNow string) *WeekResolver {
	t.Helper()
	now, err := time.Parse(time.RFC3339, utcNow)
	if err != nil {
		t.Fatalf("bad test time %s: %v", utcNow, err)
	}
	r := NewWeekResolver(testEntry())
	r.now = func() time.Time { return now }
	return r
}

func TestCurrentWeekFromSchedule(t *testing.T) {
	tests := []struct {
		name     string
		now      string
		maxWeek  int
		schedule []models.ScheduledGame
		expected int
	}{
		{
			name:    "mid week picks next game's week",
			now:     "2025-09-18T18:00:00Z", // Thursday afternoon Eastern
			maxWeek: 2,
			schedule: []models.ScheduledGame{
				gameOn(2, "2025-09-14"),
				gameOn(3, "2025-09-18"),
				gameOn(3, "2025-09-21"),
			},
			expected: 3,
		},
		{
			name:    "tuesday advances past a finished week",
			now:     "2025-09-23T16:00:00Z", // Tuesday
			maxWeek: 2,
			schedule: []models.ScheduledGame{
				gameOn(3, "2025-09-21"),
				gameOn(3, "2025-09-22"),
				gameOn(4, "2025-09-25"),
			},
			expected: 4,
		},
		{
			name:    "tuesday keeps a week with games remaining",
			now:     "2025-09-23T16:00:00Z", // Tuesday
			maxWeek: 2,
			schedule: []models.ScheduledGame{
				gameOn(3, "2025-09-21"),
				gameOn(3, "2025-09-23"), // postponed to Tuesday
				gameOn(4, "2025-09-25"),
			},
			expected: 3,
		},
		{
			name:    "late monday utc is tuesday eastern",
			now:     "2025-09-24T02:00:00Z", // Tuesday 21:00 Eastern
			maxWeek: 2,
			schedule: []models.ScheduledGame{
				gameOn(3, "2025-09-22"),
				gameOn(4, "2025-09-28"),
			},
			expected: 4,
		},
		{
			name:    "sunday morning keeps the current slate",
			now:     "2025-09-21T14:00:00Z", // Sunday
			maxWeek: 2,
			schedule: []models.ScheduledGame{
				gameOn(3, "2025-09-21"),
				gameOn(4, "2025-09-28"),
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolverAt(t, tt.now)
			snap := snapshot.New(2025, playsThroughWeek(tt.maxWeek), &models.SeasonStats{Season: 2025}, tt.schedule)

			assert.Equal(t, tt.expected, r.CurrentWeek(snap))
		})
	}
}

func TestCurrentWeekFallbacks(t *testing.T) {
	r := resolverAt(t, "2025-09-18T18:00:00Z")

	t.Run("nil snapshot defaults", func(t *testing.T) {
		assert.Equal(t, defaultWeek, r.CurrentWeek(nil))
	})

	t.Run("no schedule uses completed plays", func(t *testing.T) {
		snap := snapshot.New(2025, playsThroughWeek(6), &models.SeasonStats{Season: 2025}, nil)
		assert.Equal(t, 7, r.CurrentWeek(snap))
	})

	t.Run("exhausted schedule uses completed plays", func(t *testing.T) {
		schedule := []models.ScheduledGame{gameOn(2, "2025-09-14")}
		snap := snapshot.New(2025, playsThroughWeek(2), &models.SeasonStats{Season: 2025}, schedule)
		assert.Equal(t, 3, r.CurrentWeek(snap))
	})

	t.Run("empty snapshot defaults", func(t *testing.T) {
		snap := snapshot.New(2025, nil, &models.SeasonStats{Season: 2025}, nil)
		assert.Equal(t, defaultWeek, r.CurrentWeek(snap))
	})
}

func TestMatchupsForWeek(t *testing.T) {
	schedule := []models.ScheduledGame{
		gameOn(3, "2025-09-18"),
		gameOn(4, "2025-09-25"),
		gameOn(3, "2025-09-21"),
	}

	games := MatchupsForWeek(schedule, 3)

	assert.Len(t, games, 2)
	assert.Equal(t, "2025-09-18", games[0].GameID)
	assert.Equal(t, "2025-09-21", games[1].GameID)
	assert.Empty(t, MatchupsForWeek(schedule, 9))
}
