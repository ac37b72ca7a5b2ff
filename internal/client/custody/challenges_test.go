package custody

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygrant/keygrant-api/internal/logger"
	"github.com/keygrant/keygrant-api/internal/services"
)

func init() {
	logger.InitLogger("test")
}

func TestCreateDelegationChallenge(t *testing.T) {
	sessionKeyID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/delegations/challenge", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req challengeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wallet-1", req.WalletID)
		assert.Equal(t, sessionKeyID.String(), req.ReferenceID)
		assert.Equal(t, "create", req.Kind)
		assert.Equal(t, int64(100_00), req.SpendingLimit)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"challengeId":"chal-abc"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	handle, err := client.CreateDelegationChallenge(context.Background(), services.CustodyChallengeParams{
		WalletID:        "wallet-1",
		UserID:          "user-1",
		SessionKeyID:    sessionKeyID,
		RequestedKind:   "create",
		AllowedActions:  []string{"transfer"},
		SpendingLimit:   100_00,
		DurationSeconds: 3600,
	})

	require.NoError(t, err)
	assert.Equal(t, "chal-abc", handle.ChallengeID)
}

func TestCreateDelegationChallenge_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"wallet not found"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	handle, err := client.CreateDelegationChallenge(context.Background(), services.CustodyChallengeParams{
		WalletID:      "missing",
		UserID:        "user-1",
		SessionKeyID:  uuid.New(),
		RequestedKind: "create",
	})

	assert.Error(t, err)
	assert.Nil(t, handle)
}

func TestGetChallenge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/delegations/challenge/chal-abc", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"challengeId":"chal-abc","status":"COMPLETE","delegateAddress":"0xdelegate"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	resp, err := client.GetChallenge(context.Background(), "chal-abc")

	require.NoError(t, err)
	assert.Equal(t, "COMPLETE", resp.Data.Status)
	assert.Equal(t, "0xdelegate", resp.Data.DelegateAddress)
}
