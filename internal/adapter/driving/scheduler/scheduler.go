package scheduler

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/diillson/momcarebot/internal/application/usecase"
	"github.com/diillson/momcarebot/pkg/clock"
)

// DefaultGrace is how late a fire may run before it is dropped.
const DefaultGrace = time.Hour

// Specs returns the cron expressions of the three reminder jobs, keyed by job name.
func Specs(transferDay int) map[string]string {
	return map[string]string{
		usecase.JobMonthlySupport:   fmt.Sprintf("0 9 %d * *", transferDay),
		usecase.JobWeeklyCall:       "0 18 * * SUN",
		usecase.JobEmergencySavings: "0 19 * * FRI",
	}
}

// Scheduler fires registered jobs on their cron schedules. A job never
// overlaps with its own previous run.
type Scheduler struct {
	cron   *cron.Cron
	loc    *time.Location
	grace  time.Duration
	clock  clock.Clock
	logger log.FieldLogger
}

// New creates a scheduler evaluating schedules in loc.
func New(loc *time.Location, logger log.FieldLogger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		loc:    loc,
		grace:  DefaultGrace,
		clock:  clock.SystemClock{Location: loc},
		logger: logger,
	}
}

// Register adds a job under a five-field cron spec.
func (s *Scheduler) Register(ctx context.Context, name, spec string, run func(context.Context)) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.cron.Schedule(schedule, cron.FuncJob(func() {
		now := s.clock.Now().In(s.loc)
		if planned, ok := s.withinGrace(schedule, now); !ok {
			s.logger.WithFields(log.Fields{"job": name, "planned": planned}).Warn("missed fire outside grace window, skipping")
			return
		}
		run(ctx)
	}))
	s.logger.WithFields(log.Fields{"job": name, "spec": spec}).Info("job scheduled")
	return nil
}

// withinGrace reports whether schedule had a fire time in the grace window
// ending at now, and returns the first such time (or the next one).
func (s *Scheduler) withinGrace(schedule cron.Schedule, now time.Time) (time.Time, bool) {
	planned := schedule.Next(now.Add(-s.grace))
	return planned, !planned.After(now)
}

// Next returns the upcoming fire time of every registered job.
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Schedule.Next(s.clock.Now().In(s.loc)))
	}
	return next
}

// Run starts the scheduler and blocks until ctx is cancelled, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
