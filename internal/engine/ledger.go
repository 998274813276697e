package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"coin-alert-bot-go/internal/logger"
	"coin-alert-bot-go/internal/store"
)

// LedgerSettings contains the equity simulation parameters
type LedgerSettings struct {
	InitialBalance   float64
	PositionFraction float64
}

// SimulationLedger records closed trades against a simulated account balance
type SimulationLedger struct {
	store    store.LedgerStore
	settings LedgerSettings
	logger   *logger.Logger
}

// NewSimulationLedger creates a simulation ledger
func NewSimulationLedger(st store.LedgerStore, settings LedgerSettings, log *logger.Logger) *SimulationLedger {
	return &SimulationLedger{
		store:    st,
		settings: settings,
		logger:   log,
	}
}

// Record applies a closed position to the ledger. Positions with a
// non-positive entry price cannot produce a meaningful return and are
// skipped. The updated ledger is written in a single operation.
func (l *SimulationLedger) Record(ctx context.Context, position *store.PositionRecord) error {
	if position.EntryPrice <= 0 {
		l.logger.WithToken(position.Mint).Warn("skipping ledger update for position with no entry price")
		return nil
	}

	ledger, err := l.store.GetLedger(ctx)
	if err != nil {
		return fmt.Errorf("ledger read failed: %w", err)
	}
	if ledger == nil {
		ledger = &store.LedgerRecord{
			Balance: decimal.NewFromFloat(l.settings.InitialBalance),
		}
	}

	fraction := decimal.NewFromFloat(l.settings.PositionFraction)
	positionSize := ledger.Balance.Mul(fraction)

	entry := decimal.NewFromFloat(position.EntryPrice)
	exit := decimal.NewFromFloat(position.ExitPrice)
	ret := exit.Div(entry).Sub(decimal.NewFromInt(1))
	profit := positionSize.Mul(ret)

	ledger.Balance = ledger.Balance.Add(profit)
	ledger.TotalTrades++
	if profit.IsPositive() {
		ledger.Wins++
	} else {
		ledger.Losses++
	}
	ledger.Winrate = float64(ledger.Wins) / float64(ledger.TotalTrades) * 100
	ledger.LastTrade = &store.TradeSummary{
		Mint:       position.Mint,
		EntryPrice: position.EntryPrice,
		ExitPrice:  position.ExitPrice,
		Return:     ret,
		Profit:     profit,
		Outcome:    position.Outcome,
		ClosedAt:   position.ExitTime,
	}

	if err := l.store.PutLedger(ctx, ledger); err != nil {
		return fmt.Errorf("ledger write failed: %w", err)
	}

	l.logger.LogLedgerUpdate(ledger.Balance.String(), ledger.TotalTrades, ledger.Wins, ledger.Losses, ledger.Winrate)
	return nil
}
