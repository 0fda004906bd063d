package service

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// easternZone pins week boundaries to US Eastern time, the league's
// scheduling convention. A fixed offset is intentional: game days, not
// kickoff clock times, decide the week.
var easternZone = time.FixedZone("ET", -5*60*60)

// defaultWeek is the conservative answer when neither schedule nor play
// data can resolve the week.
const defaultWeek = 3

// WeekResolver determines which week to analyze from the schedule and the
// completed play data.
type WeekResolver struct {
	logger *logrus.Entry
	now    func() time.Time
}

// NewWeekResolver creates a week resolver
func NewWeekResolver(logger *logrus.Entry) *WeekResolver {
	return &WeekResolver{
		logger: logger,
		now:    time.Now,
	}
}

// CurrentWeek resolves the upcoming week for a snapshot.
//
// The week of the next scheduled game wins. On Tuesday and Wednesday, when
// the week after the last completed one has no games left, the slate
// advances one week further. Without a usable schedule the resolver falls
// back to the last completed week plus one.
func (r *WeekResolver) CurrentWeek(snap *snapshot.Snapshot) int {
	if snap == nil {
		return defaultWeek
	}

	maxCompleted := snap.MaxCompletedWeek
	today := r.today()

	if week, ok := weekFromSchedule(snap.Schedule, maxCompleted, today); ok {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{
				"week":          week,
				"max_completed": maxCompleted,
			}).Debug("Resolved current week from schedule")
		}
		return week
	}

	if maxCompleted > 0 {
		if r.logger != nil {
			r.logger.WithField("week", maxCompleted+1).Debug("Resolved current week from completed plays")
		}
		return maxCompleted + 1
	}

	return defaultWeek
}

// today returns the current Eastern calendar date at UTC midnight, the form
// schedule game days are stored in
func (r *WeekResolver) today() time.Time {
	y, m, d := r.now().In(easternZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekFromSchedule picks the week of the next game on or after today
func weekFromSchedule(schedule []models.ScheduledGame, maxCompleted int, today time.Time) (int, bool) {
	if len(schedule) == 0 {
		return 0, false
	}

	upcoming := make([]models.ScheduledGame, 0, len(schedule))
	for _, g := range schedule {
		if !g.GameDay.Before(today) {
			upcoming = append(upcoming, g)
		}
	}
	if len(upcoming) == 0 {
		return 0, false
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].GameDay.Before(upcoming[j].GameDay)
	})
	week := upcoming[0].Week

	// Tuesday and Wednesday sit between slates; once the week after the
	// last completed one has no games remaining, the next slate is up.
	weekday := today.Weekday()
	if weekday == time.Tuesday || weekday == time.Wednesday {
		if !hasRemainingGames(schedule, maxCompleted+1, today) {
			week = maxCompleted + 2
		}
	}

	return week, true
}

// hasRemainingGames reports whether a week still has games on or after today
func hasRemainingGames(schedule []models.ScheduledGame, week int, today time.Time) bool {
	for _, g := range schedule {
		if g.Week == week && !g.GameDay.Before(today) {
			return true
		}
	}
	return false
}

// MatchupsForWeek returns the scheduled games for one week in schedule order
func MatchupsForWeek(schedule []models.ScheduledGame, week int) []models.ScheduledGame {
	var games []models.ScheduledGame
	for _, g := range schedule {
		if g.Week == week {
			games = append(games, g)
		}
	}
	return games
}
