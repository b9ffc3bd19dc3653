package referral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referralHandler(t *testing.T, failing *bool) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/referral/generateReferralLink", func(w http.ResponseWriter, r *http.Request) {
		if *failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"payload": map[string]string{"referralId": "ref-1", "url": "https://halcyon.app/invite/ref-1"},
		})
	})

	mux.HandleFunc("/v1/referral/processReferralReward", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["referrerId"] == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "missing referrer"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	mux.HandleFunc("/v1/referral/getReferralStats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"payload": map[string]any{"totalInvites": 5, "completed": 2, "pending": 3, "totalRewards": 200},
		})
	})

	return mux
}

func TestHTTPBackend_GenerateLink(t *testing.T) {
	failing := false
	server := httptest.NewServer(referralHandler(t, &failing))
	defer server.Close()

	backend := NewHTTPBackend(BackendConfig{BaseURL: server.URL}, nil)

	link, err := backend.GenerateLink(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "ref-1", link.ReferralID)
	assert.Equal(t, "https://halcyon.app/invite/ref-1", link.URL)
}

func TestHTTPBackend_RejectionSurfacesMessage(t *testing.T) {
	failing := false
	server := httptest.NewServer(referralHandler(t, &failing))
	defer server.Close()

	backend := NewHTTPBackend(BackendConfig{BaseURL: server.URL}, nil)

	err := backend.ProcessReward(context.Background(), "tok", "", "dev-1", "linux/1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing referrer")
}

func TestHTTPBackend_Stats(t *testing.T) {
	failing := false
	server := httptest.NewServer(referralHandler(t, &failing))
	defer server.Close()

	backend := NewHTTPBackend(BackendConfig{BaseURL: server.URL}, nil)

	stats, err := backend.Stats(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalInvites)
	assert.Equal(t, int64(200), stats.TotalRewards)
}

func TestHTTPBackend_BreakerOpensOnConsecutiveFailures(t *testing.T) {
	failing := true
	server := httptest.NewServer(referralHandler(t, &failing))
	defer server.Close()

	backend := NewHTTPBackend(BackendConfig{
		BaseURL:        server.URL,
		BreakerEnabled: true,
		BreakerTrips:   2,
		BreakerTimeout: time.Minute,
	}, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := backend.GenerateLink(ctx, "tok")
		require.Error(t, err)
	}

	_, err := backend.GenerateLink(ctx, "tok")
	require.ErrorIs(t, err, gobreaker.ErrOpenState, "breaker fails fast once open")
}
