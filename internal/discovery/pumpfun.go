package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"coin-alert-bot-go/internal/logger"
)

// Candidate is a token surfaced by the discovery feed
type Candidate struct {
	Mint    string         `json:"mint"`
	Name    string         `json:"name"`
	Symbol  string         `json:"symbol"`
	Creator string         `json:"creator"`
	Raw     map[string]any `json:"-"`
}

// Config contains discovery feed configuration
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	IncludeNSFW bool
}

// Client polls the pump.fun frontend API for the current king-of-the-hill token
type Client struct {
	http   *resty.Client
	config Config
	logger *logger.Logger
}

// NewClient creates a new discovery client
func NewClient(config Config, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout)

	return &Client{
		http:   httpClient,
		config: config,
		logger: log,
	}
}

// FetchCandidate fetches the current king-of-the-hill token. The endpoint has
// returned both a flat coin object and a {"coin": {...}} envelope over time,
// so both shapes are accepted.
func (c *Client) FetchCandidate(ctx context.Context) (*Candidate, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("includeNsfw", fmt.Sprintf("%t", c.config.IncludeNSFW)).
		Get("/coins/king-of-the-hill")
	if err != nil {
		return nil, fmt.Errorf("discovery request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("discovery request failed: status %d", resp.StatusCode())
	}

	var raw map[string]any
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse discovery response: %w", err)
	}

	coin := raw
	if nested, ok := raw["coin"].(map[string]any); ok {
		coin = nested
	}

	mint, _ := coin["mint"].(string)
	if mint == "" {
		return nil, fmt.Errorf("discovery response missing mint")
	}

	candidate := &Candidate{
		Mint: mint,
		Raw:  coin,
	}
	if name, ok := coin["name"].(string); ok {
		candidate.Name = name
	}
	if symbol, ok := coin["symbol"].(string); ok {
		candidate.Symbol = symbol
	}
	if creator, ok := coin["creator"].(string); ok {
		candidate.Creator = creator
	}

	return candidate, nil
}
