package rugcheck

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coin-alert-bot-go/internal/logger"
)

// testSigner is a throwaway ed25519 identity
type testSigner struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return &testSigner{priv: priv, pub: pub}
}

func (s *testSigner) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, message), nil
}

func (s *testSigner) PublicKeyString() string {
	return base58.Encode(s.pub)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *testSigner) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, err := logger.NewLogger(logger.LogConfig{Level: "error", Format: "text"})
	require.NoError(t, err)

	signer := newTestSigner(t)
	client := NewClient(Config{
		BaseURL:       srv.URL,
		SignInMessage: "Sign-in to Rugcheck.xyz",
		Timeout:       2 * time.Second,
	}, signer, log)
	return client, signer
}

func TestLoginSignsMessageAndStoresToken(t *testing.T) {
	var signer *testSigner

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/solana", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "Sign-in to Rugcheck.xyz", req.Message.Message)
		assert.Equal(t, signer.PublicKeyString(), req.Message.PublicKey)
		assert.NotZero(t, req.Message.Timestamp)
		assert.Equal(t, "ed25519", req.Signature.Type)

		// Verify the signature against the serialized message payload
		msgBytes, err := json.Marshal(req.Message)
		require.NoError(t, err)
		sig := make([]byte, len(req.Signature.Data))
		for i, v := range req.Signature.Data {
			sig[i] = byte(v)
		}
		assert.True(t, ed25519.Verify(signer.pub, msgBytes, sig))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{Token: "jwt-token"})
	})

	client, s := newTestClient(t, mux)
	signer = s

	require.NoError(t, client.Login(context.Background()))
	assert.False(t, client.Degraded())
}

func TestFetchReportRequiresLogin(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())

	_, err := client.FetchReport(context.Background(), "mint1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFetchReportReturnsReport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/solana", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{Token: "jwt-token"})
	})
	mux.HandleFunc("/v1/tokens/mint1/report", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"risks": [{"name": "Copycat token", "description": "This token is using a verified tokens symbol", "level": "warn"}],
			"topHolders": [{"address": "h1", "pct": 12.5}]
		}`))
	})

	client, _ := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background()))

	report, err := client.FetchReport(context.Background(), "mint1")
	require.NoError(t, err)
	require.Len(t, report.Risks, 1)
	assert.Equal(t, "Copycat token", report.Risks[0].Name)
	assert.Equal(t, 12.5, report.TopHolders[0].Pct)
}

func TestFetchReportLatchesDegradedOnUnauthorized(t *testing.T) {
	var reportCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/solana", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{Token: "jwt-token"})
	})
	mux.HandleFunc("/v1/tokens/mint1/report", func(w http.ResponseWriter, r *http.Request) {
		reportCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background()))

	_, err := client.FetchReport(context.Background(), "mint1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, client.Degraded())

	// Subsequent fetches short-circuit without hitting the API
	_, err = client.FetchReport(context.Background(), "mint1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, reportCalls)
}

func TestFetchReportNoData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/solana", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{Token: "jwt-token"})
	})
	mux.HandleFunc("/v1/tokens/mint1/report", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background()))

	_, err := client.FetchReport(context.Background(), "mint1")
	assert.ErrorIs(t, err, ErrNoData)
	assert.False(t, client.Degraded())
}
