package jobs

import (
	"context"
	"log/slog"
	"time"

	"vokzal/internal/service"
)

// TripGenerationJob materializes tomorrow's trips from the route schedules.
// Safe to re-run: already-generated (route, date) pairs are skipped.
type TripGenerationJob struct {
	trips  *service.TripService
	ticker *time.Ticker
	done   chan bool
}

func NewTripGenerationJob(trips *service.TripService) *TripGenerationJob {
	return &TripGenerationJob{
		trips: trips,
		done:  make(chan bool),
	}
}

// Run generates trips for the given date (zero value means tomorrow) and
// logs the per-route outcome report.
func (j *TripGenerationJob) Run(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		date = time.Now().AddDate(0, 0, 1)
	}

	report, err := j.trips.GenerateForDate(ctx, date)
	if err != nil {
		slog.Error("Trip generation failed", "error", err)
		return err
	}

	slog.Info("Trip generation completed",
		"date", report.Date,
		"created", report.Created,
		"skipped_exists", report.SkippedExists,
		"skipped_no_bus", report.SkippedNoBus,
		"errors", len(report.Errors))

	for _, e := range report.Errors {
		slog.Error("Trip generation route error", "detail", e)
	}

	return nil
}

// Start generates trips for the following day on the given interval.
func (j *TripGenerationJob) Start(ctx context.Context, interval time.Duration) {
	slog.Info("Starting trip generation job", "interval", interval.String())

	j.ticker = time.NewTicker(interval)

	go j.Run(ctx, time.Time{})

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.Run(ctx, time.Time{})
			case <-j.done:
				slog.Info("Trip generation job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the ticker loop.
func (j *TripGenerationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}
