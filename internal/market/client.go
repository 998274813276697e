package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"coin-alert-bot-go/internal/logger"
)

// ErrSnapshotUnavailable indicates the metrics API has no pair data for the
// token yet, even after retrying.
var ErrSnapshotUnavailable = errors.New("market: snapshot unavailable")

// Config contains market client configuration
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	EmptyRetries    int
	EmptyRetryDelay time.Duration
}

// Client fetches token market metrics from the DexScreener API
type Client struct {
	http   *resty.Client
	config Config
	logger *logger.Logger
}

// NewClient creates a new market metrics client
func NewClient(config Config, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			switch r.StatusCode() {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return true
			}
			return false
		})

	return &Client{
		http:   httpClient,
		config: config,
		logger: log,
	}
}

// pairsResponse mirrors the /tokens/{mint} payload
type pairsResponse struct {
	Pairs []pair `json:"pairs"`
}

type pair struct {
	PriceUsd string `json:"priceUsd"`
	Volume   struct {
		M5 float64 `json:"m5"`
	} `json:"volume"`
	Txns struct {
		M5 struct {
			Buys  int `json:"buys"`
			Sells int `json:"sells"`
		} `json:"m5"`
	} `json:"txns"`
	MarketCap float64 `json:"marketCap"`
	FDV       float64 `json:"fdv"`
}

// FetchSnapshot fetches the current metrics for a mint. Newly listed tokens
// can take a few seconds to appear in the index, so an empty pair list is
// retried a bounded number of times before giving up with
// ErrSnapshotUnavailable.
func (c *Client) FetchSnapshot(ctx context.Context, mint string) (*Snapshot, error) {
	attempts := c.config.EmptyRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		snapshot, err := c.fetchOnce(ctx, mint)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, ErrSnapshotUnavailable) {
			return nil, err
		}
		if attempt == attempts {
			break
		}

		c.logger.WithToken(mint).Debugf("no pair data yet, retrying (%d/%d)", attempt, attempts)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.config.EmptyRetryDelay):
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrSnapshotUnavailable, mint)
}

func (c *Client) fetchOnce(ctx context.Context, mint string) (*Snapshot, error) {
	var result pairsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/tokens/" + mint)
	if err != nil {
		return nil, fmt.Errorf("metrics request failed for %s: %w", mint, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("metrics request failed for %s: status %d", mint, resp.StatusCode())
	}

	if len(result.Pairs) == 0 {
		return nil, ErrSnapshotUnavailable
	}

	p := result.Pairs[0]

	price := 0.0
	if p.PriceUsd != "" {
		parsed, err := strconv.ParseFloat(p.PriceUsd, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid priceUsd %q for %s: %w", p.PriceUsd, mint, err)
		}
		price = parsed
	}

	marketCap := p.MarketCap
	if marketCap == 0 {
		marketCap = p.FDV
	}

	totalVolume := p.Volume.M5
	buys := p.Txns.M5.Buys
	sells := p.Txns.M5.Sells

	// The 5-minute volume field is aggregate only, so buy and sell legs are
	// apportioned by trade counts.
	buyVolume := 0.0
	sellVolume := 0.0
	if buys+sells > 0 {
		buyVolume = totalVolume * float64(buys) / float64(buys+sells)
		sellVolume = totalVolume * float64(sells) / float64(buys+sells)
	}

	return &Snapshot{
		Price:       price,
		BuyVolume:   buyVolume,
		SellVolume:  sellVolume,
		TotalVolume: totalVolume,
		Buys:        buys,
		Sells:       sells,
		MarketCap:   marketCap,
		CapturedAt:  time.Now().UTC(),
	}, nil
}
