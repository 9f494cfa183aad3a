package reaper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu      sync.Mutex
	pending int
	err     error
	cutoffs []time.Time
	// onDelete runs before each batch, outside the lock.
	onDelete func()
}

func (f *fakeSessions) DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	if f.onDelete != nil {
		f.onDelete()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.err != nil {
		return 0, f.err
	}
	n := min(limit, f.pending)
	f.pending -= n
	return n, nil
}

func (f *fakeSessions) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func newTestReaper(s *fakeSessions, spec string, batch int) *Reaper {
	r := New(s, slog.New(slog.DiscardHandler), spec, batch)
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }
	return r
}

func TestReap_DrainsInBatches(t *testing.T) {
	s := &fakeSessions{pending: 25}
	r := newTestReaper(s, "@every 1h", 10)
	before := testutil.ToFloat64(metrics.SessionsReapedTotal)

	n := r.Reap(context.Background())

	assert.Equal(t, 25, n)
	assert.Equal(t, 3, s.calls(), "10 + 10 + 5")
	assert.Equal(t, 25.0, testutil.ToFloat64(metrics.SessionsReapedTotal)-before)
}

func TestReap_SameCutoffForEveryBatch(t *testing.T) {
	s := &fakeSessions{pending: 20}
	r := newTestReaper(s, "@every 1h", 10)

	r.Reap(context.Background())

	require.Len(t, s.cutoffs, 3)
	for _, c := range s.cutoffs {
		assert.Equal(t, s.cutoffs[0], c)
	}
}

func TestReap_StoreErrorStopsCycle(t *testing.T) {
	s := &fakeSessions{pending: 100, err: errors.New("connection refused")}
	r := newTestReaper(s, "@every 1h", 10)
	before := testutil.ToFloat64(metrics.ReaperErrorsTotal)

	n := r.Reap(context.Background())

	assert.Zero(t, n)
	assert.Equal(t, 1, s.calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReaperErrorsTotal)-before)
}

func TestReap_CancelledContext(t *testing.T) {
	s := &fakeSessions{pending: 5}
	r := newTestReaper(s, "@every 1h", 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, r.Reap(ctx))
	assert.Zero(t, s.calls())
}

func TestReap_ShutdownMidCycleIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &fakeSessions{pending: 100, onDelete: cancel}
	r := newTestReaper(s, "@every 1h", 10)
	before := testutil.ToFloat64(metrics.ReaperErrorsTotal)

	n := r.Reap(ctx)

	assert.Zero(t, n)
	assert.Equal(t, 1, s.calls())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ReaperErrorsTotal)-before)
}

func TestStart_InvalidSchedule(t *testing.T) {
	r := newTestReaper(&fakeSessions{}, "not a cron spec", 10)

	assert.Error(t, r.Start(context.Background()))
}

func TestStart_RunsOnScheduleAndStops(t *testing.T) {
	s := &fakeSessions{pending: 3}
	r := newTestReaper(s, "@every 1s", 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	require.Eventually(t, func() bool { return s.calls() > 0 }, 3*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
