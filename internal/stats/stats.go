package stats

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/setrep/workout-api/internal/metrics"
	"github.com/setrep/workout-api/internal/repo"
)

// Refresher keeps the DB-backed prometheus gauges (users_total,
// workouts_total) current by re-counting on a cron schedule.
type Refresher struct {
	Users    *repo.UserRepo
	Workouts *repo.WorkoutRepo
}

// Run refreshes the gauges once immediately, then every minute until ctx is
// canceled. It blocks; start it in its own goroutine.
func (s *Refresher) Run(ctx context.Context) {
	c := cron.New()

	s.refresh(ctx)

	if _, err := c.AddFunc("* * * * *", func() { s.refresh(ctx) }); err != nil {
		slog.Error("stats: add cron func", "error", err)
		return
	}
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}

func (s *Refresher) refresh(ctx context.Context) {
	if n, err := s.Users.Count(ctx); err != nil {
		slog.Error("stats: count users", "error", err)
	} else {
		metrics.SetUsersTotal(n)
	}

	if n, err := s.Workouts.Count(ctx); err != nil {
		slog.Error("stats: count workouts", "error", err)
	} else {
		metrics.SetWorkoutsTotal(n)
	}
}
