package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coin-alert-bot-go/internal/logger"
)

func newTestSink(t *testing.T, handler http.HandlerFunc) *TelegramSink {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, err := logger.NewLogger(logger.LogConfig{Level: "error", Format: "text"})
	require.NoError(t, err)

	return NewTelegramSink(Config{
		BaseURL:  srv.URL,
		BotToken: "token123",
		ChatID:   "chat456",
		Timeout:  2 * time.Second,
	}, log)
}

func TestSendPostsHTMLMessage(t *testing.T) {
	sink := newTestSink(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken123/sendMessage", r.URL.Path)

		var req sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "chat456", req.ChatID)
		assert.Equal(t, "HTML", req.ParseMode)
		assert.Equal(t, "<b>hello</b>", req.Text)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	})

	require.NoError(t, sink.Send(context.Background(), "<b>hello</b>"))
}

func TestSendReturnsErrorOnAPIFailure(t *testing.T) {
	sink := newTestSink(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
	})

	err := sink.Send(context.Background(), "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNopSinkSwallowsEverything(t *testing.T) {
	assert.NoError(t, NopSink{}.Send(context.Background(), "anything"))
}
