package store

import "context"

// CoinStore persists tokens under watch. Get returns (nil, nil) when no
// record exists for the mint.
type CoinStore interface {
	PutCoin(ctx context.Context, record *CoinRecord) error
	GetCoin(ctx context.Context, mint string) (*CoinRecord, error)
	DeleteCoin(ctx context.Context, mint string) error
	ListCoins(ctx context.Context) ([]*CoinRecord, error)
}

// PositionStore persists simulated positions. Get returns (nil, nil) when no
// record exists for the mint.
type PositionStore interface {
	PutPosition(ctx context.Context, record *PositionRecord) error
	GetPosition(ctx context.Context, mint string) (*PositionRecord, error)
	ListOpenPositions(ctx context.Context) ([]*PositionRecord, error)
}

// LedgerStore persists the equity simulation state. Get returns (nil, nil)
// when no ledger has been written yet.
type LedgerStore interface {
	PutLedger(ctx context.Context, record *LedgerRecord) error
	GetLedger(ctx context.Context) (*LedgerRecord, error)
}

// StatsStore accumulates criterion failure counters
type StatsStore interface {
	IncrCriterionFail(ctx context.Context, criterion string) error
	GetCriterionFails(ctx context.Context) (map[string]int64, error)
}

// Store is the full persistence surface the bot depends on
type Store interface {
	CoinStore
	PositionStore
	LedgerStore
	StatsStore

	Close() error
}
