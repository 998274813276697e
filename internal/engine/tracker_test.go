package engine

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/store"
)

func newTestTracker(t *testing.T, metrics *fakeMetrics, settings ExitSettings) (*PositionTracker, *store.RedisStore) {
	t.Helper()
	st := newEngineTestStore(t)
	ledger := NewSimulationLedger(st, LedgerSettings{InitialBalance: 0.1, PositionFraction: 0.10}, newTestLogger(t))
	tracker := NewPositionTracker(st, metrics, ledger, settings, newTestLogger(t))
	return tracker, st
}

func defaultExitSettings() ExitSettings {
	return ExitSettings{
		StopLossMultiplier:   0.90,
		TakeProfitMultiplier: 1.50,
		MaxHold:              10 * time.Minute,
	}
}

func openPosition(entry float64, alertTime time.Time) *store.PositionRecord {
	return &store.PositionRecord{
		Mint:       "mint1",
		Name:       "Token",
		Symbol:     "TKN",
		EntryPrice: entry,
		PeakPrice:  entry,
		AlertTime:  alertTime,
		Status:     store.StatusOpen,
	}
}

func TestTrackStopLoss(t *testing.T) {
	metrics := &fakeMetrics{}
	metrics.push(&market.Snapshot{Price: 0.89})
	tracker, st := newTestTracker(t, metrics, defaultExitSettings())
	ctx := context.Background()

	require.NoError(t, st.PutPosition(ctx, openPosition(1.0, time.Now())))
	require.NoError(t, tracker.Track(ctx))

	got, err := st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusClosed, got.Status)
	assert.Equal(t, store.OutcomeStopLoss, got.Outcome)
	assert.Equal(t, 0.89, got.ExitPrice)
	assert.Equal(t, 1.0, got.EntryPrice)

	ledger, err := st.GetLedger(ctx)
	require.NoError(t, err)
	require.NotNil(t, ledger)
	assert.Equal(t, 1, ledger.Losses)
}

func TestTrackTakeProfit(t *testing.T) {
	metrics := &fakeMetrics{}
	metrics.push(&market.Snapshot{Price: 1.55})
	tracker, st := newTestTracker(t, metrics, defaultExitSettings())
	ctx := context.Background()

	require.NoError(t, st.PutPosition(ctx, openPosition(1.0, time.Now())))
	require.NoError(t, tracker.Track(ctx))

	got, err := st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, store.OutcomeTakeProfit, got.Outcome)
	assert.Equal(t, 1.55, got.PeakPrice)
}

func TestTrackMarketExitAfterMaxHold(t *testing.T) {
	metrics := &fakeMetrics{}
	metrics.push(&market.Snapshot{Price: 1.05})
	tracker, st := newTestTracker(t, metrics, defaultExitSettings())
	ctx := context.Background()

	require.NoError(t, st.PutPosition(ctx, openPosition(1.0, time.Now().Add(-11*time.Minute))))
	require.NoError(t, tracker.Track(ctx))

	got, err := st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, store.OutcomeMarketExit, got.Outcome)
	assert.InDelta(t, 11.0, got.DurationMin, 0.5)
}

func TestTrackStopLossWinsWhenPriceFellThroughBoth(t *testing.T) {
	// A price at or below the stop never reaches the take-profit branch, even
	// for positions already past max hold.
	metrics := &fakeMetrics{}
	metrics.push(&market.Snapshot{Price: 0.85})
	tracker, st := newTestTracker(t, metrics, defaultExitSettings())
	ctx := context.Background()

	require.NoError(t, st.PutPosition(ctx, openPosition(1.0, time.Now().Add(-15*time.Minute))))
	require.NoError(t, tracker.Track(ctx))

	got, err := st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, store.OutcomeStopLoss, got.Outcome)
}

func TestTrackPersistsPeakWithoutExit(t *testing.T) {
	metrics := &fakeMetrics{}
	metrics.push(&market.Snapshot{Price: 1.2})
	tracker, st := newTestTracker(t, metrics, defaultExitSettings())
	ctx := context.Background()

	require.NoError(t, st.PutPosition(ctx, openPosition(1.0, time.Now())))
	require.NoError(t, tracker.Track(ctx))

	got, err := st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusOpen, got.Status)
	assert.Equal(t, 1.2, got.PeakPrice)

	// A lower price does not pull the peak back down
	metrics.push(&market.Snapshot{Price: 1.1})
	require.NoError(t, tracker.Track(ctx))

	got, err = st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, 1.2, got.PeakPrice)
}

func TestTrackSkipsPositionOnFetchFailure(t *testing.T) {
	metrics := &fakeMetrics{err: market.ErrSnapshotUnavailable}
	tracker, st := newTestTracker(t, metrics, defaultExitSettings())
	ctx := context.Background()

	require.NoError(t, st.PutPosition(ctx, openPosition(1.0, time.Now().Add(-11*time.Minute))))
	require.NoError(t, tracker.Track(ctx))

	got, err := st.GetPosition(ctx, "mint1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusOpen, got.Status)
}

func TestPeakNeverDecreasesProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("peak equals running max over any price path", prop.ForAll(
		func(prices []float64) bool {
			metrics := &fakeMetrics{}
			// Wide exit bounds so no rule fires mid-path
			tracker, st := newTestTracker(t, metrics, ExitSettings{
				StopLossMultiplier:   1e-9,
				TakeProfitMultiplier: 1e9,
				MaxHold:              24 * time.Hour,
			})
			ctx := context.Background()

			entry := 1.0
			if err := st.PutPosition(ctx, openPosition(entry, time.Now())); err != nil {
				return false
			}

			expectedPeak := entry
			for _, price := range prices {
				metrics.push(&market.Snapshot{Price: price})
				if err := tracker.Track(ctx); err != nil {
					return false
				}
				if price > expectedPeak {
					expectedPeak = price
				}

				got, err := st.GetPosition(ctx, "mint1")
				if err != nil || got == nil {
					return false
				}
				if got.PeakPrice != expectedPeak {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.Float64Range(0.01, 10)),
	))

	properties.TestingRun(t)
}
