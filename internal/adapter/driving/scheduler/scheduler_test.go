package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/momcarebot/pkg/clock"
)

func newTestScheduler(t *testing.T, now time.Time) (*Scheduler, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	logger := log.New()
	logger.SetOutput(io.Discard)
	s := New(loc, logger)
	s.clock = &clock.MockClock{FixedNow: now}
	return s, loc
}

func TestSpecs(t *testing.T) {
	specs := Specs(15)

	assert.Equal(t, "0 9 15 * *", specs["monthly_support"])
	assert.Equal(t, "0 18 * * SUN", specs["weekly_call"])
	assert.Equal(t, "0 19 * * FRI", specs["emergency_savings"])
	for name, spec := range specs {
		_, err := cron.ParseStandard(spec)
		assert.NoError(t, err, name)
	}
}

func TestScheduler_Register(t *testing.T) {
	t.Run("should reject invalid specs", func(t *testing.T) {
		s, _ := newTestScheduler(t, time.Now())

		err := s.Register(context.Background(), "broken", "every day", func(context.Context) {})

		assert.ErrorContains(t, err, "broken")
	})

	t.Run("should compute fire times in the configured timezone", func(t *testing.T) {
		// given
		s, loc := newTestScheduler(t, time.Date(2026, time.June, 2, 12, 0, 0, 0, time.UTC))
		require.NoError(t, s.Register(context.Background(), "monthly_support", Specs(1)["monthly_support"], func(context.Context) {}))
		require.NoError(t, s.Register(context.Background(), "weekly_call", Specs(1)["weekly_call"], func(context.Context) {}))

		// when
		next := s.Next()

		// then
		require.Len(t, next, 2)
		assert.True(t, next[0].Equal(time.Date(2026, time.July, 1, 9, 0, 0, 0, loc)), next[0].String())
		assert.True(t, next[1].Equal(time.Date(2026, time.June, 7, 18, 0, 0, 0, loc)), next[1].String())
		// British summer time
		assert.Equal(t, 8, next[0].UTC().Hour())
	})
}

func TestScheduler_withinGrace(t *testing.T) {
	s, loc := newTestScheduler(t, time.Now())
	schedule, err := cron.ParseStandard("0 19 * * FRI")
	require.NoError(t, err)
	friday := time.Date(2026, time.March, 6, 19, 0, 0, 0, loc)

	tests := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"on time", friday, true},
		{"a few seconds late", friday.Add(3 * time.Second), true},
		{"just inside the window", friday.Add(59 * time.Minute), true},
		{"outside the window", friday.Add(61 * time.Minute), false},
		{"a day later", friday.Add(24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planned, ok := s.withinGrace(schedule, tt.now)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, planned.Equal(friday))
			}
		})
	}
}
