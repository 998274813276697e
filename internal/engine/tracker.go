package engine

import (
	"context"
	"fmt"
	"time"

	"coin-alert-bot-go/internal/logger"
	"coin-alert-bot-go/internal/store"
)

// ExitSettings contains the position exit rules
type ExitSettings struct {
	StopLossMultiplier   float64
	TakeProfitMultiplier float64
	MaxHold              time.Duration
}

// PositionTracker monitors open simulated positions and closes them when an
// exit rule fires
type PositionTracker struct {
	store    store.Store
	metrics  MetricsSource
	ledger   *SimulationLedger
	settings ExitSettings
	logger   *logger.Logger
	clock    func() time.Time
}

// NewPositionTracker creates a position tracker
func NewPositionTracker(st store.Store, metrics MetricsSource, ledger *SimulationLedger,
	settings ExitSettings, log *logger.Logger) *PositionTracker {
	return &PositionTracker{
		store:    st,
		metrics:  metrics,
		ledger:   ledger,
		settings: settings,
		logger:   log,
		clock:    time.Now,
	}
}

// SetClock overrides the tracker clock. Used by tests.
func (t *PositionTracker) SetClock(clock func() time.Time) {
	t.clock = clock
}

// Track sweeps all open positions once. Positions whose snapshot cannot be
// fetched this cycle are left untouched.
func (t *PositionTracker) Track(ctx context.Context) error {
	positions, err := t.store.ListOpenPositions(ctx)
	if err != nil {
		return fmt.Errorf("position sweep failed: %w", err)
	}

	for _, position := range positions {
		snapshot, err := t.metrics.FetchSnapshot(ctx, position.Mint)
		if err != nil {
			t.logger.WithToken(position.Mint).WithError(err).Debug("snapshot unavailable, skipping position this cycle")
			continue
		}

		if snapshot.Price > position.PeakPrice {
			position.PeakPrice = snapshot.Price
		}

		outcome := t.exitOutcome(position, snapshot.Price)
		if outcome == "" {
			// Persist the peak even when no exit fires, so it survives restarts.
			if err := t.store.PutPosition(ctx, position); err != nil {
				t.logger.WithToken(position.Mint).WithError(err).Warn("failed to persist position peak")
			}
			continue
		}

		now := t.clock()
		position.Status = store.StatusClosed
		position.ExitPrice = snapshot.Price
		position.ExitTime = now
		position.Outcome = outcome
		position.DurationMin = now.Sub(position.AlertTime).Minutes()

		if err := t.store.PutPosition(ctx, position); err != nil {
			t.logger.WithToken(position.Mint).WithError(err).Error("failed to close position")
			continue
		}

		t.logger.LogPositionClosed(position.Mint, outcome, position.EntryPrice, position.ExitPrice, position.DurationMin)

		if err := t.ledger.Record(ctx, position); err != nil {
			t.logger.WithToken(position.Mint).WithError(err).Error("failed to record trade in ledger")
		}
	}
	return nil
}

// exitOutcome returns the name of the exit rule that fires for the current
// price, or empty when the position stays open. Stop loss wins over take
// profit when both could apply.
func (t *PositionTracker) exitOutcome(position *store.PositionRecord, price float64) string {
	if price <= position.EntryPrice*t.settings.StopLossMultiplier {
		return store.OutcomeStopLoss
	}
	if price >= position.EntryPrice*t.settings.TakeProfitMultiplier {
		return store.OutcomeTakeProfit
	}
	if t.clock().Sub(position.AlertTime) >= t.settings.MaxHold {
		return store.OutcomeMarketExit
	}
	return ""
}
