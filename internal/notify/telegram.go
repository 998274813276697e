package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"coin-alert-bot-go/internal/logger"
)

// Sink delivers alert messages to an external channel
type Sink interface {
	Send(ctx context.Context, text string) error
}

// Config contains Telegram sink configuration
type Config struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Timeout  time.Duration
}

// TelegramSink sends messages through the Telegram bot API
type TelegramSink struct {
	http   *resty.Client
	config Config
	logger *logger.Logger
}

// NewTelegramSink creates a new Telegram sink
func NewTelegramSink(config Config, log *logger.Logger) *TelegramSink {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout)

	return &TelegramSink{
		http:   httpClient,
		config: config,
		logger: log,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers an HTML-formatted message to the configured chat
func (s *TelegramSink) Send(ctx context.Context, text string) error {
	req := sendMessageRequest{
		ChatID:    s.config.ChatID,
		Text:      text,
		ParseMode: "HTML",
	}

	var result sendMessageResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", s.config.BotToken))
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !result.OK {
		return fmt.Errorf("telegram send failed: status %d: %s", resp.StatusCode(), result.Description)
	}

	return nil
}

// NopSink discards all messages. Used for dry runs and when notifications
// are disabled.
type NopSink struct{}

// Send implements Sink
func (NopSink) Send(ctx context.Context, text string) error {
	return nil
}
