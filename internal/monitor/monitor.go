// ABOUTME: Background polling engine for the live call monitor
// ABOUTME: Timer-based fetches with a monotonic sequence guard against out-of-order completions

package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2389/aira-console/internal/aira"
)

// Fetcher is the backend surface the monitor polls.
type Fetcher interface {
	LiveCalls(ctx context.Context) ([]aira.CallListItem, error)
	GetStats(ctx context.Context) (*aira.Stats, error)
}

// Snapshot is the monitor's current view of the backend. Calls and Stats are
// replaced wholesale by successful fetches; a failed half keeps its previous
// value and is flagged stale instead of being blanked.
type Snapshot struct {
	Seq        uint64
	Calls      []aira.CallListItem
	Stats      aira.Stats
	CallsStale bool
	StatsStale bool
	FetchedAt  time.Time
	HasData    bool
}

// Monitor polls live calls and aggregate stats on a fixed interval. Ticks
// fire on schedule even when a previous fetch is still in flight, so
// responses can complete out of order; each tick carries a sequence number
// and a response only installs if its sequence is newer than what that half
// of the snapshot already holds.
type Monitor struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
	bcast    *Broadcaster

	seq atomic.Uint64

	mu       sync.Mutex
	snap     Snapshot
	callsSeq uint64
	statsSeq uint64
	closed   bool
	done     chan struct{}
}

// New creates a Monitor polling fetcher every interval.
func New(fetcher Fetcher, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Monitor{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger.With("component", "monitor"),
		bcast:    NewBroadcaster(logger),
		done:     make(chan struct{}),
	}
}

// Run polls until ctx is cancelled or Close is called. The first fetch runs
// immediately; later ticks each spawn their own fetch so a slow backend never
// delays the schedule.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("live monitor started", "interval", m.interval)

	if err := m.refresh(ctx); err != nil {
		m.logger.Warn("initial live fetch failed", "error", err)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("live monitor stopped")
			return
		case <-m.done:
			m.logger.Info("live monitor closed")
			return
		case <-ticker.C:
			go func() {
				// Background tick failures are logged, never surfaced;
				// manual refresh is the only path that reports errors.
				if err := m.refresh(ctx); err != nil {
					m.logger.Debug("background live fetch failed", "error", err)
				}
			}()
		}
	}
}

// RefreshNow performs one fetch outside the timer, for the operator's manual
// refresh button. Unlike background ticks its error is returned so the UI can
// surface it.
func (m *Monitor) RefreshNow(ctx context.Context) error {
	return m.refresh(ctx)
}

// refresh fetches live calls and stats concurrently under one sequence
// number and installs whatever succeeded.
func (m *Monitor) refresh(ctx context.Context) error {
	seq := m.seq.Add(1)

	var (
		wg       sync.WaitGroup
		calls    []aira.CallListItem
		callsErr error
		stats    *aira.Stats
		statsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		calls, callsErr = m.fetcher.LiveCalls(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = m.fetcher.GetStats(ctx)
	}()
	wg.Wait()

	m.apply(seq, calls, callsErr, stats, statsErr)

	if callsErr != nil {
		return callsErr
	}
	return statsErr
}

// apply installs fetch results under the sequence guard and publishes the
// resulting snapshot. An older response never replaces a newer one; a failed
// half marks itself stale without touching the other.
func (m *Monitor) apply(seq uint64, calls []aira.CallListItem, callsErr error, stats *aira.Stats, statsErr error) {
	m.mu.Lock()

	changed := false

	if callsErr == nil {
		if seq > m.callsSeq {
			m.callsSeq = seq
			m.snap.Calls = calls
			m.snap.CallsStale = false
			m.snap.HasData = true
			changed = true
		}
	} else if seq > m.callsSeq {
		m.snap.CallsStale = true
		changed = true
	}

	if statsErr == nil && stats != nil {
		if seq > m.statsSeq {
			m.statsSeq = seq
			m.snap.Stats = *stats
			m.snap.StatsStale = false
			m.snap.HasData = true
			changed = true
		}
	} else if statsErr != nil && seq > m.statsSeq {
		m.snap.StatsStale = true
		changed = true
	}

	if changed {
		m.snap.Seq = seq
		m.snap.FetchedAt = time.Now().UTC()
	}
	snap := m.snap
	m.mu.Unlock()

	if changed {
		m.bcast.Publish(snap)
	}
}

// Snapshot returns the current view.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Subscribe registers for snapshot updates until ctx is cancelled.
func (m *Monitor) Subscribe(ctx context.Context) (<-chan Snapshot, string) {
	return m.bcast.Subscribe(ctx)
}

// Close stops the run loop and disconnects all subscribers.
func (m *Monitor) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.done)
	m.mu.Unlock()

	m.bcast.Close()
}
