package market

import (
	"fmt"
	"strings"
	"time"

	"coin-alert-bot-go/internal/rugcheck"
)

// Snapshot is a point-in-time view of a token's market metrics
type Snapshot struct {
	Price       float64             `json:"price"`
	BuyVolume   float64             `json:"buy_volume"`
	SellVolume  float64             `json:"sell_volume"`
	TotalVolume float64             `json:"total_volume"`
	Buys        int                 `json:"buys"`
	Sells       int                 `json:"sells"`
	MarketCap   float64             `json:"market_cap"`
	Risks       []rugcheck.RiskFlag `json:"risks,omitempty"`
	CapturedAt  time.Time           `json:"captured_at"`
}

// MarketCapChange returns the percentage change of this snapshot's market cap
// relative to a reference snapshot. The bool is false when the reference has
// no usable market cap.
func (s *Snapshot) MarketCapChange(ref *Snapshot) (float64, bool) {
	if ref == nil || ref.MarketCap <= 0 {
		return 0, false
	}
	return (s.MarketCap - ref.MarketCap) / ref.MarketCap * 100, true
}

// FormatMarketCap renders a market cap with thousands separators, e.g. $1,234,567
func FormatMarketCap(marketCap float64) string {
	whole := int64(marketCap)
	s := fmt.Sprintf("%d", whole)
	if whole < 0 {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ",")
	if whole < 0 {
		out = "-" + out
	}
	return out
}
