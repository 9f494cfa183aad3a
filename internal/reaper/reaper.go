package reaper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/robfig/cron/v3"
)

type sessionDeleter interface {
	DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// Reaper deletes expired session rows on a cron schedule. Sessions are already
// rejected at authentication once expired; this only keeps the table small.
type Reaper struct {
	sessions sessionDeleter
	logger   *slog.Logger
	spec     string
	batch    int
	now      func() time.Time
}

func New(sessions sessionDeleter, logger *slog.Logger, spec string, batch int) *Reaper {
	return &Reaper{
		sessions: sessions,
		logger:   logger.With("component", "reaper"),
		spec:     spec,
		batch:    batch,
		now:      time.Now,
	}
}

// Start runs the schedule until ctx is cancelled and waits for an in-flight
// cycle to finish before returning.
func (r *Reaper) Start(ctx context.Context) error {
	cl := cronLogger{r.logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(r.spec, func() { r.Reap(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", r.spec, err)
	}

	r.logger.Info("reaper started", "schedule", r.spec, "batch", r.batch)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("reaper shut down")
	return nil
}

// Reap deletes expired sessions in batches until a batch comes back short.
func (r *Reaper) Reap(ctx context.Context) int {
	start := time.Now()
	defer func() { metrics.ReaperCycleDuration.Observe(time.Since(start).Seconds()) }()

	cutoff := r.now()
	total := 0
	for ctx.Err() == nil {
		n, err := r.sessions.DeleteExpired(ctx, cutoff, r.batch)
		total += n
		if err != nil {
			if ctx.Err() != nil {
				r.logger.InfoContext(ctx, "reap interrupted by shutdown", "deleted", total)
				break
			}
			metrics.ReaperErrorsTotal.Inc()
			r.logger.ErrorContext(ctx, "delete expired sessions", "error", err, "deleted", total)
			break
		}
		if n < r.batch {
			break
		}
	}

	if total > 0 {
		metrics.SessionsReapedTotal.Add(float64(total))
		r.logger.InfoContext(ctx, "expired sessions deleted", "count", total)
	}
	return total
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
