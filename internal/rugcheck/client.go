package rugcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"coin-alert-bot-go/internal/logger"
)

var (
	// ErrUnauthorized indicates the session token was rejected or missing
	ErrUnauthorized = errors.New("rugcheck: unauthorized")

	// ErrNoData indicates the API has no report for the requested mint
	ErrNoData = errors.New("rugcheck: no report data")
)

// Signer provides the identity used to authenticate with the API
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKeyString() string
}

// Config contains Rugcheck client configuration
type Config struct {
	BaseURL       string
	SignInMessage string
	Timeout       time.Duration
}

// Client talks to the Rugcheck report API
type Client struct {
	http   *resty.Client
	config Config
	signer Signer
	logger *logger.Logger

	mu       sync.Mutex
	token    string
	degraded bool
}

// NewClient creates a new Rugcheck client
func NewClient(config Config, signer Signer, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		config: config,
		signer: signer,
		logger: log,
	}
}

// loginMessage is the signed payload. Field order matters: the API verifies
// the signature against this exact serialization.
type loginMessage struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	PublicKey string `json:"publicKey"`
}

type loginSignature struct {
	Data []int  `json:"data"`
	Type string `json:"type"`
}

type loginRequest struct {
	Message   loginMessage   `json:"message"`
	Signature loginSignature `json:"signature"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates with the API by signing the sign-in message with the
// configured wallet and stores the returned session token.
func (c *Client) Login(ctx context.Context) error {
	msg := loginMessage{
		Message:   c.config.SignInMessage,
		Timestamp: time.Now().UnixMilli(),
		PublicKey: c.signer.PublicKeyString(),
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal login message: %w", err)
	}

	sig, err := c.signer.Sign(msgBytes)
	if err != nil {
		return fmt.Errorf("failed to sign login message: %w", err)
	}

	sigData := make([]int, len(sig))
	for i, b := range sig {
		sigData[i] = int(b)
	}

	req := loginRequest{
		Message: msg,
		Signature: loginSignature{
			Data: sigData,
			Type: "ed25519",
		},
	}

	var result loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/auth/login/solana")
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("login request failed: status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Token == "" {
		return fmt.Errorf("login response missing token")
	}

	c.mu.Lock()
	c.token = result.Token
	c.degraded = false
	c.mu.Unlock()

	c.logger.LogConnection("rugcheck", "authenticated", c.signer.PublicKeyString())
	return nil
}

// Degraded reports whether the client has given up on authenticated requests
func (c *Client) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// FetchReport fetches the risk report for a mint. Returns ErrUnauthorized
// when the session is rejected and ErrNoData when the API has no report yet.
func (c *Client) FetchReport(ctx context.Context, mint string) (*Report, error) {
	c.mu.Lock()
	token := c.token
	degraded := c.degraded
	c.mu.Unlock()

	if degraded {
		return nil, ErrUnauthorized
	}
	if token == "" {
		return nil, ErrUnauthorized
	}

	var report Report
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&report).
		Get(fmt.Sprintf("/v1/tokens/%s/report", mint))
	if err != nil {
		return nil, fmt.Errorf("report request failed for %s: %w", mint, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return &report, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		c.mu.Lock()
		c.degraded = true
		c.mu.Unlock()
		c.logger.WithComponent("rugcheck").Warnf("session rejected with status %d, disabling risk reports", resp.StatusCode())
		return nil, ErrUnauthorized
	case http.StatusNotFound, http.StatusBadRequest:
		return nil, ErrNoData
	default:
		return nil, fmt.Errorf("report request failed for %s: status %d", mint, resp.StatusCode())
	}
}
