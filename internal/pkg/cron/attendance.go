package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
)

const (
	endOfDaySweepJob = "end_of_day_attendance_sweep"
	staleSessionJob  = "stale_session_closer"
)

type AttendanceJobs struct {
	sweepService attendance.SweepService
}

func NewAttendanceJobs(sweepService attendance.SweepService) *AttendanceJobs {
	return &AttendanceJobs{sweepService: sweepService}
}

// RegisterJobs schedules the end-of-day sweep at hour:minute in loc and, when
// staleEvery is positive, the stale-session closer on that interval.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, hour, minute int, loc *time.Location, staleEvery time.Duration) {
	scheduler.DailyAt(endOfDaySweepJob, hour, minute, loc, j.EndOfDaySweep)
	if staleEvery > 0 {
		scheduler.AddJob(staleSessionJob, staleEvery, j.CloseStaleSessions)
	}
}

// CloseStaleSessions closes sessions that can no longer be checked out. An
// overnight session stays open until the check-in window opens.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	closed, err := j.sweepService.CloseStaleSessions(ctx, j.sweepService.StaleCutoff())
	if err != nil {
		return fmt.Errorf("failed to close stale sessions: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: Closed stale attendance sessions", "count", closed)
	}
	return nil
}

// EndOfDaySweep closes sessions left open on earlier days, then marks today's
// absentees. Both steps are idempotent so a rerun is harmless.
func (j *AttendanceJobs) EndOfDaySweep(ctx context.Context) error {
	today := j.sweepService.Today()
	slog.Info("Cron: Starting end-of-day attendance sweep", "date", today)

	var errs []error

	closed, err := j.sweepService.CloseStaleSessions(ctx, today)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to close stale sessions: %w", err))
	} else if closed > 0 {
		slog.Info("Cron: Closed stale attendance sessions", "count", closed)
	}

	result, err := j.sweepService.RunAbsenceSweep(ctx, today)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to run absence sweep: %w", err))
	} else {
		slog.Info("Cron: Absence sweep finished",
			"date", result.Date,
			"skipped", result.Skipped,
			"marked_absent", result.MarkedAbsent,
			"already_present", result.AlreadyPresent,
			"failed", result.Failed)
	}

	return errors.Join(errs...)
}
