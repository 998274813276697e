package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"coin-alert-bot-go/internal/logger"
	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/rugcheck"
	"coin-alert-bot-go/internal/store"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(logger.LogConfig{Level: "error", Format: "text"})
	require.NoError(t, err)
	return log
}

func newEngineTestStore(t *testing.T) *store.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewRedisStoreFromClient(client, newTestLogger(t))
	t.Cleanup(func() { st.Close() })
	return st
}

// fakeMetrics serves snapshots from a queue, repeating the last served one
// once the queue drains
type fakeMetrics struct {
	mu    sync.Mutex
	queue []*market.Snapshot
	last  *market.Snapshot
	err   error
}

func (f *fakeMetrics) FetchSnapshot(ctx context.Context, mint string) (*market.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if len(f.queue) > 0 {
		f.last = f.queue[0]
		f.queue = f.queue[1:]
	}
	if f.last == nil {
		return nil, market.ErrSnapshotUnavailable
	}
	copied := *f.last
	return &copied, nil
}

func (f *fakeMetrics) push(snaps ...*market.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, snaps...)
}

type fakeRisk struct {
	mu     sync.Mutex
	report *rugcheck.Report
	err    error
}

func (f *fakeRisk) FetchReport(ctx context.Context, mint string) (*rugcheck.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeSink struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeSink) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}
