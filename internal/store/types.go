package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/rugcheck"
)

// Position status values
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Position close outcomes
const (
	OutcomeStopLoss   = "Stop Loss"
	OutcomeTakeProfit = "Take Profit"
	OutcomeMarketExit = "Market Exit"
)

// ReservedIntervalMinutes are the checkpoint offsets a coin record carries
// snapshot slots for, keyed as strings in the Intervals map.
var ReservedIntervalMinutes = []int{2, 5, 15, 30, 60, 120, 240}

// PricePoint is one entry in a coin's watch-time price history
type PricePoint struct {
	Price      float64   `json:"price"`
	MarketCap  float64   `json:"market_cap"`
	CapturedAt time.Time `json:"captured_at"`
}

// CoinRecord is the persisted state of a token under watch
type CoinRecord struct {
	Mint           string                      `json:"mint"`
	Name           string                      `json:"name"`
	Symbol         string                      `json:"symbol"`
	Creator        string                      `json:"creator,omitempty"`
	TimestampAdded time.Time                   `json:"timestamp_added"`
	Initial        *market.Snapshot            `json:"initial"`
	Current        *market.Snapshot            `json:"current,omitempty"`
	Intervals      map[string]*market.Snapshot `json:"intervals,omitempty"`
	PriceHistory   []PricePoint                `json:"price_history,omitempty"`
	RiskReport     *rugcheck.Report            `json:"risk_report,omitempty"`
	Posted         bool                        `json:"posted"`
}

// NewCoinRecord builds a coin record with the reserved interval slots
// initialized to empty.
func NewCoinRecord(mint, name, symbol, creator string, initial *market.Snapshot, added time.Time) *CoinRecord {
	intervals := make(map[string]*market.Snapshot, len(ReservedIntervalMinutes))
	for _, m := range ReservedIntervalMinutes {
		intervals[IntervalKey(m)] = nil
	}

	return &CoinRecord{
		Mint:           mint,
		Name:           name,
		Symbol:         symbol,
		Creator:        creator,
		TimestampAdded: added,
		Initial:        initial,
		Intervals:      intervals,
	}
}

// IntervalKey returns the Intervals map key for a checkpoint offset
func IntervalKey(minutes int) string {
	return fmt.Sprintf("%dmin", minutes)
}

// PositionRecord is the persisted state of a simulated position
type PositionRecord struct {
	Mint        string    `json:"mint"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	EntryPrice  float64   `json:"entry_price"`
	PeakPrice   float64   `json:"peak_price"`
	AlertTime   time.Time `json:"alert_time"`
	Status      string    `json:"status"`
	ExitPrice   float64   `json:"exit_price,omitempty"`
	ExitTime    time.Time `json:"exit_time,omitempty"`
	Outcome     string    `json:"outcome,omitempty"`
	DurationMin float64   `json:"duration_min,omitempty"`
}

// TradeSummary describes the most recent closed trade in the ledger
type TradeSummary struct {
	Mint       string          `json:"mint"`
	EntryPrice float64         `json:"entry_price"`
	ExitPrice  float64         `json:"exit_price"`
	Return     decimal.Decimal `json:"return"`
	Profit     decimal.Decimal `json:"profit"`
	Outcome    string          `json:"outcome"`
	ClosedAt   time.Time       `json:"closed_at"`
}

// LedgerRecord is the persisted equity simulation state
type LedgerRecord struct {
	Balance     decimal.Decimal `json:"balance"`
	TotalTrades int             `json:"total_trades"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Winrate     float64         `json:"winrate"`
	LastTrade   *TradeSummary   `json:"last_trade,omitempty"`
}
