package jobs

import (
	"context"
	"log/slog"
	"time"

	"vokzal/internal/service"
)

// BookingExpirationJob sweeps expired reservations. It can run as a one-shot
// invocation (cmd/jobs sweep-expired) or on a ticker.
type BookingExpirationJob struct {
	tickets *service.TicketService
	ticker  *time.Ticker
	done    chan bool
}

func NewBookingExpirationJob(tickets *service.TicketService) *BookingExpirationJob {
	return &BookingExpirationJob{
		tickets: tickets,
		done:    make(chan bool),
	}
}

// Run performs a single sweep and logs the report.
func (j *BookingExpirationJob) Run(ctx context.Context) error {
	report, err := j.tickets.SweepExpired(ctx)
	if err != nil {
		slog.Error("Expiry sweep failed", "error", err)
		return err
	}

	slog.Info("Expiry sweep completed",
		"examined", report.Examined,
		"cancelled", report.Cancelled)
	return nil
}

// Start runs the sweep on the given interval until Stop is called.
func (j *BookingExpirationJob) Start(ctx context.Context, interval time.Duration) {
	slog.Info("Starting booking expiration job", "interval", interval.String())

	j.ticker = time.NewTicker(interval)

	// Run an initial sweep immediately
	go j.Run(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.Run(ctx)
			case <-j.done:
				slog.Info("Booking expiration job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the ticker loop.
func (j *BookingExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}
