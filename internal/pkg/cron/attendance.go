package cron

import (
	"context"
	"log/slog"
	"time"
)

// AbsenceMarker closes out the previous day by inserting absent records for
// employees without one.
type AbsenceMarker interface {
	MarkAbsentees(ctx context.Context, date time.Time) (int, error)
}

type AttendanceJobs struct {
	marker AbsenceMarker
}

func NewAttendanceJobs(marker AbsenceMarker) *AttendanceJobs {
	return &AttendanceJobs{marker: marker}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	count, err := j.marker.MarkAbsentees(ctx, date)
	if err != nil {
		return err
	}

	slog.Info("Cron: Marked absent employees", "count", count, "date", date.Format("2006-01-02"))
	return nil
}
