package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"coin-alert-bot-go/internal/discovery"
	"coin-alert-bot-go/internal/logger"
	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/notify"
	"coin-alert-bot-go/internal/rugcheck"
	"coin-alert-bot-go/internal/store"
)

// MetricsSource provides market snapshots for a mint
type MetricsSource interface {
	FetchSnapshot(ctx context.Context, mint string) (*market.Snapshot, error)
}

// RiskSource provides risk reports for a mint
type RiskSource interface {
	FetchReport(ctx context.Context, mint string) (*rugcheck.Report, error)
}

// WatchSettings contains the watch-window timing
type WatchSettings struct {
	MinWatchDelay time.Duration
	WatchWindow   time.Duration
	PollInterval  time.Duration
}

// Engine drives tokens through the discovery, watch, and alert lifecycle
type Engine struct {
	store     store.Store
	metrics   MetricsSource
	risk      RiskSource
	sink      notify.Sink
	evaluator *CriteriaEvaluator
	logger    *logger.Logger
	settings  WatchSettings
	clock     func() time.Time

	mu       sync.Mutex
	watching map[string]struct{}
	wg       sync.WaitGroup
}

// NewEngine creates a lifecycle engine. risk may be nil when risk reports
// are disabled.
func NewEngine(st store.Store, metrics MetricsSource, risk RiskSource, sink notify.Sink,
	evaluator *CriteriaEvaluator, settings WatchSettings, log *logger.Logger) *Engine {
	return &Engine{
		store:     st,
		metrics:   metrics,
		risk:      risk,
		sink:      sink,
		evaluator: evaluator,
		logger:    log,
		settings:  settings,
		clock:     time.Now,
		watching:  make(map[string]struct{}),
	}
}

// SetClock overrides the engine clock. Used by tests.
func (e *Engine) SetClock(clock func() time.Time) {
	e.clock = clock
}

// Intake registers a discovered token for watching. Tokens that are already
// being watched or already hold an open position are skipped.
func (e *Engine) Intake(ctx context.Context, candidate *discovery.Candidate) error {
	existing, err := e.store.GetCoin(ctx, candidate.Mint)
	if err != nil {
		return fmt.Errorf("intake lookup failed for %s: %w", candidate.Mint, err)
	}
	if existing != nil {
		return nil
	}

	position, err := e.store.GetPosition(ctx, candidate.Mint)
	if err != nil {
		return fmt.Errorf("intake position lookup failed for %s: %w", candidate.Mint, err)
	}
	if position != nil && position.Status == store.StatusOpen {
		return nil
	}

	snapshot, err := e.metrics.FetchSnapshot(ctx, candidate.Mint)
	if err != nil {
		return fmt.Errorf("intake snapshot failed for %s: %w", candidate.Mint, err)
	}

	record := store.NewCoinRecord(candidate.Mint, candidate.Name, candidate.Symbol, candidate.Creator, snapshot, e.clock())

	if e.risk != nil {
		report, err := e.risk.FetchReport(ctx, candidate.Mint)
		if err != nil {
			e.logger.WithToken(candidate.Mint).WithError(err).Debug("risk report unavailable at intake")
		} else {
			record.RiskReport = report
			snapshot.Risks = report.Risks
			e.logger.WithToken(candidate.Mint).WithFields(logrus.Fields{
				"top5_holder_pct": report.TopHolderConcentration(e.evaluator.config.PoolAddress),
				"risk_count":      len(report.Risks),
			}).Info("Risk report attached")
		}
	}

	if err := e.store.PutCoin(ctx, record); err != nil {
		return fmt.Errorf("intake write failed for %s: %w", candidate.Mint, err)
	}

	e.logger.LogTokenDiscovered(candidate.Mint, candidate.Name, candidate.Symbol, snapshot.MarketCap)
	return nil
}

// Advance sweeps all watched tokens and moves them through the lifecycle:
// tokens inside the evaluation window get a watch task, tokens past the
// window expire.
func (e *Engine) Advance(ctx context.Context) error {
	records, err := e.store.ListCoins(ctx)
	if err != nil {
		return fmt.Errorf("advance sweep failed: %w", err)
	}

	now := e.clock()
	for _, record := range records {
		if record.Posted {
			// Alerted records are deleted at alert time, so a surviving one is
			// leftover state from a crash.
			if err := e.store.DeleteCoin(ctx, record.Mint); err != nil {
				e.logger.WithToken(record.Mint).WithError(err).Warn("failed to remove stale alerted record")
			}
			continue
		}

		elapsed := now.Sub(record.TimestampAdded)
		switch {
		case elapsed < e.settings.MinWatchDelay:
			continue
		case elapsed < e.settings.WatchWindow:
			e.startWatch(ctx, record)
		default:
			if e.isWatching(record.Mint) {
				continue
			}
			if err := e.store.DeleteCoin(ctx, record.Mint); err != nil {
				e.logger.WithToken(record.Mint).WithError(err).Warn("failed to expire record")
				continue
			}
			e.logger.LogTokenExpired(record.Mint, elapsed)
		}
	}
	return nil
}

// Wait blocks until all in-flight watch tasks finish
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) isWatching(mint string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.watching[mint]
	return ok
}

func (e *Engine) startWatch(ctx context.Context, record *store.CoinRecord) {
	e.mu.Lock()
	if _, ok := e.watching[record.Mint]; ok {
		e.mu.Unlock()
		return
	}
	e.watching[record.Mint] = struct{}{}
	e.mu.Unlock()

	e.wg.Add(1)
	go e.watchToken(ctx, record)
}

// watchToken polls a single token until it alerts or its window closes
func (e *Engine) watchToken(ctx context.Context, record *store.CoinRecord) {
	defer func() {
		// A broken record must never take the whole engine down; the token is
		// dropped from the in-flight set and expires on a later sweep.
		if r := recover(); r != nil {
			e.logger.WithToken(record.Mint).Errorf("watch task panicked: %v", r)
		}
		e.mu.Lock()
		delete(e.watching, record.Mint)
		e.mu.Unlock()
		e.wg.Done()
	}()

	e.logger.LogWatchStarted(record.Mint, e.clock().Sub(record.TimestampAdded))

	deadline := record.TimestampAdded.Add(e.settings.WatchWindow)
	ticker := time.NewTicker(e.settings.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !e.clock().Before(deadline) {
			return
		}

		snapshot, err := e.metrics.FetchSnapshot(ctx, record.Mint)
		if err != nil {
			if errors.Is(err, market.ErrSnapshotUnavailable) {
				e.logger.WithToken(record.Mint).Debug("snapshot unavailable during watch")
			} else {
				e.logger.WithToken(record.Mint).WithError(err).Warn("snapshot fetch failed during watch")
			}
			continue
		}

		e.recordObservation(ctx, record, snapshot)

		report := record.RiskReport
		if e.risk != nil && e.evaluator.MarketConditionsMet(record, snapshot) {
			fresh, err := e.risk.FetchReport(ctx, record.Mint)
			if err != nil {
				e.logger.WithToken(record.Mint).WithError(err).Debug("risk report fetch failed")
			} else {
				report = fresh
				record.RiskReport = fresh
			}
		}

		ok, failed := e.evaluator.Evaluate(record, snapshot, report)
		if !ok {
			e.logger.LogCriteriaReject(record.Mint, failed, "entry criteria not met")
			if err := e.store.IncrCriterionFail(ctx, failed); err != nil {
				e.logger.WithToken(record.Mint).WithError(err).Warn("failed to record criterion failure")
			}
			continue
		}

		e.alert(ctx, record, snapshot)
		return
	}
}

// recordObservation persists the latest snapshot onto the coin record
func (e *Engine) recordObservation(ctx context.Context, record *store.CoinRecord, snapshot *market.Snapshot) {
	record.Current = snapshot
	record.PriceHistory = append(record.PriceHistory, store.PricePoint{
		Price:      snapshot.Price,
		MarketCap:  snapshot.MarketCap,
		CapturedAt: snapshot.CapturedAt,
	})

	// Records written by older versions may lack the interval map
	if record.Intervals == nil {
		record.Intervals = make(map[string]*market.Snapshot, len(store.ReservedIntervalMinutes))
	}

	elapsedMin := int(e.clock().Sub(record.TimestampAdded).Minutes())
	for _, m := range store.ReservedIntervalMinutes {
		if elapsedMin >= m && record.Intervals[store.IntervalKey(m)] == nil {
			record.Intervals[store.IntervalKey(m)] = snapshot
		}
	}

	if err := e.store.PutCoin(ctx, record); err != nil {
		e.logger.WithToken(record.Mint).WithError(err).Warn("failed to persist watch observation")
	}
}

// alert delivers the one-shot alert and opens a simulated position
func (e *Engine) alert(ctx context.Context, record *store.CoinRecord, snapshot *market.Snapshot) {
	// Re-fetch so the alert carries the freshest numbers. The evaluation
	// snapshot is the fallback.
	final := snapshot
	if fresh, err := e.metrics.FetchSnapshot(ctx, record.Mint); err == nil {
		final = fresh
	}

	message := formatAlertMessage(record, final, e.clock().Sub(record.TimestampAdded))
	if err := e.sink.Send(ctx, message); err != nil {
		e.logger.LogAlertDeliveryFailed(record.Mint, err)
	}

	record.Posted = true
	record.Current = final
	if err := e.store.PutCoin(ctx, record); err != nil {
		e.logger.WithToken(record.Mint).WithError(err).Warn("failed to mark record posted")
	}
	if err := e.store.DeleteCoin(ctx, record.Mint); err != nil {
		e.logger.WithToken(record.Mint).WithError(err).Warn("failed to remove alerted record")
	}

	now := e.clock()
	position := &store.PositionRecord{
		Mint:       record.Mint,
		Name:       record.Name,
		Symbol:     record.Symbol,
		EntryPrice: final.Price,
		PeakPrice:  final.Price,
		AlertTime:  now,
		Status:     store.StatusOpen,
	}
	if err := e.store.PutPosition(ctx, position); err != nil {
		e.logger.WithToken(record.Mint).WithError(err).Error("failed to open position")
		return
	}

	e.logger.LogAlertSent(record.Mint, record.Name, final.MarketCap, final.Price)
	e.logger.LogPositionOpened(record.Mint, record.Name, final.Price)
}

// formatAlertMessage builds the HTML alert body
func formatAlertMessage(record *store.CoinRecord, snapshot *market.Snapshot, elapsed time.Duration) string {
	growthLine := ""
	if growth, ok := snapshot.MarketCapChange(record.Initial); ok {
		growthLine = fmt.Sprintf("\n📈 Growth: <b>%+.1f%%</b>", growth)
	}

	return fmt.Sprintf(
		"🚨 <b>%s ($%s)</b>\n\n"+
			"💎 Market Cap: <b>%s</b>%s\n"+
			"💵 Price: <b>$%.8f</b>\n"+
			"🛒 Buys: <b>%d</b> | Sells: <b>%d</b>\n"+
			"⏱ Watched for <b>%.1f min</b>\n\n"+
			"<code>%s</code>",
		record.Name, record.Symbol,
		market.FormatMarketCap(snapshot.MarketCap), growthLine,
		snapshot.Price,
		snapshot.Buys, snapshot.Sells,
		elapsed.Minutes(),
		record.Mint,
	)
}
