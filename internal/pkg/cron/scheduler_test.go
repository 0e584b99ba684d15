package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySchedule_Next(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	d := DailySchedule{Hour: 20, Minute: 0, Location: loc}

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"earlier same day", time.Date(2025, 7, 14, 9, 0, 0, 0, loc), time.Date(2025, 7, 14, 20, 0, 0, 0, loc)},
		{"exactly at trigger", time.Date(2025, 7, 14, 20, 0, 0, 0, loc), time.Date(2025, 7, 15, 20, 0, 0, 0, loc)},
		{"after trigger", time.Date(2025, 7, 14, 21, 30, 0, 0, loc), time.Date(2025, 7, 15, 20, 0, 0, 0, loc)},
		// 15:00 UTC is 20:30 in Kolkata.
		{"other timezone input", time.Date(2025, 7, 14, 15, 0, 0, 0, time.UTC), time.Date(2025, 7, 15, 20, 0, 0, 0, loc)},
		{"month rollover", time.Date(2025, 7, 31, 22, 0, 0, 0, loc), time.Date(2025, 8, 1, 20, 0, 0, 0, loc)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, c.want.Equal(d.Next(c.now)), "got %s", d.Next(c.now))
		})
	}
}

func TestDailySchedule_NilLocationIsUTC(t *testing.T) {
	d := DailySchedule{Hour: 1, Minute: 30}
	got := d.Next(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 7, 14, 1, 30, 0, 0, time.UTC), got)
}

func TestScheduler_IntervalJobRunsOnStartAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("interval job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_DailyJobDoesNotRunOnStart(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	now := time.Now().UTC()
	// Scheduled an hour from now so it never fires during the test.
	s.DailyAt("later", (now.Hour()+1)%24, now.Minute(), time.UTC, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	assert.Zero(t, runs.Load())
	require.Len(t, s.jobs, 1)
	assert.NotNil(t, s.jobs[0].Daily)
}

func TestScheduler_FailingJobDoesNotStopOthers(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("succeeds", time.Hour, func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	s.Start()
	defer s.Stop()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("second job did not run")
	}
}
