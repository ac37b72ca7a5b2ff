package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygrant/keygrant-api/internal/constants"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/logger"
	"github.com/keygrant/keygrant-api/internal/services"
	"github.com/keygrant/keygrant-api/internal/testutil"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

// stubCustody hands out sequential challenge IDs without leaving the process.
type stubCustody struct {
	nextID int
	err    error
}

func (s *stubCustody) CreateDelegationChallenge(ctx context.Context, params services.CustodyChallengeParams) (*services.CustodyChallengeHandle, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	return &services.CustodyChallengeHandle{ChallengeID: fmt.Sprintf("chal-%d", s.nextID)}, nil
}

type testEnv struct {
	store  *testutil.FakeStore
	router *gin.Engine
}

func newTestEnv() *testEnv {
	store := testutil.NewFakeStore()
	catalog := services.NewPermissionCatalog()
	challenges := services.NewChallengeService(store, catalog, &stubCustody{})
	enforcement := services.NewEnforcementService(store)
	sessionKeys := services.NewSessionKeyService(store)
	common := NewCommonServices(store, challenges, enforcement, sessionKeys)

	sessionKeyHandler := NewSessionKeyHandler(common)
	executionHandler := NewExecutionHandler(common)
	webhookHandler := NewWebhookHandler(common)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/session-keys", sessionKeyHandler.CreateSessionKey)
	v1.GET("/session-keys", sessionKeyHandler.ListSessionKeys)
	v1.GET("/session-keys/:session_key_id", sessionKeyHandler.GetSessionKey)
	v1.POST("/session-keys/:session_key_id/renew", sessionKeyHandler.RenewSessionKey)
	v1.POST("/session-keys/:session_key_id/revoke", sessionKeyHandler.RevokeSessionKey)
	v1.GET("/session-keys/:session_key_id/executions", sessionKeyHandler.ListExecutionRecords)
	v1.POST("/session-keys/:session_key_id/authorize", executionHandler.AuthorizeAction)
	v1.POST("/session-keys/:session_key_id/reverse", executionHandler.ReverseAction)
	v1.POST("/webhooks/custody/challenge", webhookHandler.HandleChallengeResult)

	return &testEnv{store: store, router: router}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedActive(limit int64) db.SessionKey {
	key := db.SessionKey{
		ID:              uuid.New(),
		WalletID:        "wallet-1",
		UserID:          "user-1",
		AgentType:       constants.PaymentsAgentType,
		Status:          db.SessionKeyStatusActive,
		AllowedActions:  []string{constants.TransferAction},
		SpendingLimit:   limit,
		DurationSeconds: 3600,
		ExpiresAt:       pgtype.Timestamptz{Time: time.Now().Add(time.Hour), Valid: true},
	}
	e.store.Seed(key)
	return key
}

func TestCreateSessionKeyHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/api/v1/session-keys", gin.H{
			"wallet_id":  "wallet-1",
			"user_id":    "user-1",
			"agent_type": constants.PaymentsAgentType,
		})

		assert.Equal(t, http.StatusAccepted, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["session_key_id"])
		assert.NotEmpty(t, resp["challenge_id"])
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/api/v1/session-keys", gin.H{"wallet_id": "wallet-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("widening override", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/api/v1/session-keys", gin.H{
			"wallet_id":  "wallet-1",
			"user_id":    "user-1",
			"agent_type": constants.PaymentsAgentType,
			"overrides":  gin.H{"spending_limit": 999_00},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wallet already has an active session", func(t *testing.T) {
		env := newTestEnv()
		env.seedActive(100_00)
		w := env.do(t, http.MethodPost, "/api/v1/session-keys", gin.H{
			"wallet_id":  "wallet-1",
			"user_id":    "user-1",
			"agent_type": constants.PaymentsAgentType,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetSessionKeyHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		env := newTestEnv()
		key := env.seedActive(100_00)
		w := env.do(t, http.MethodGet, "/api/v1/session-keys/"+key.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp SessionKeyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, key.ID.String(), resp.SessionKeyID)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, int64(100_00), resp.SpendingHeadroom)
	})

	t.Run("unknown id", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodGet, "/api/v1/session-keys/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodGet, "/api/v1/session-keys/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListSessionKeysHandler(t *testing.T) {
	env := newTestEnv()
	env.seedActive(100_00)

	w := env.do(t, http.MethodGet, "/api/v1/session-keys?user_id=user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []SessionKeyResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	w = env.do(t, http.MethodGet, "/api/v1/session-keys", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevokeSessionKeyHandler(t *testing.T) {
	t.Run("revokes and is idempotent", func(t *testing.T) {
		env := newTestEnv()
		key := env.seedActive(100_00)

		w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/revoke",
			gin.H{"reason": constants.AnomalyDetectedReason})
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/revoke", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+uuid.NewString()+"/revoke", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorizeActionHandler(t *testing.T) {
	t.Run("admitted", func(t *testing.T) {
		env := newTestEnv()
		key := env.seedActive(100_00)

		w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/authorize",
			gin.H{"action": constants.TransferAction, "amount": 25_00})
		assert.Equal(t, http.StatusOK, w.Code)

		var decision services.Decision
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
		assert.True(t, decision.Admitted)
		assert.Equal(t, int64(75_00), decision.Headroom)
	})

	t.Run("rejection is a 200 with a reason", func(t *testing.T) {
		env := newTestEnv()
		key := env.seedActive(100_00)

		w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/authorize",
			gin.H{"action": constants.BridgeAction, "amount": 25_00})
		assert.Equal(t, http.StatusOK, w.Code)

		var decision services.Decision
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
		assert.False(t, decision.Admitted)
		assert.Equal(t, services.ReasonActionNotPermitted, decision.Reason)
	})

	t.Run("negative amount", func(t *testing.T) {
		env := newTestEnv()
		key := env.seedActive(100_00)

		w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/authorize",
			gin.H{"action": constants.TransferAction, "amount": -5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReverseActionHandler(t *testing.T) {
	env := newTestEnv()
	key := env.seedActive(100_00)

	w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/authorize",
		gin.H{"action": constants.TransferAction, "amount": 40_00})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/reverse",
		gin.H{"amount": 40_00})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/session-keys/"+key.ID.String(), nil)
	var resp SessionKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.SpendingUsed)
}

func TestListExecutionRecordsHandler(t *testing.T) {
	env := newTestEnv()
	key := env.seedActive(100_00)

	w := env.do(t, http.MethodPost, "/api/v1/session-keys/"+key.ID.String()+"/authorize",
		gin.H{"action": constants.TransferAction, "amount": 10_00})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/session-keys/"+key.ID.String()+"/executions", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Outcome string `json:"outcome"`
			Amount  int64  `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "admitted", resp.Data[0].Outcome)
}

func TestChallengeWebhookHandler(t *testing.T) {
	t.Run("settles the handshake", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(t, http.MethodPost, "/api/v1/session-keys", gin.H{
			"wallet_id":  "wallet-1",
			"user_id":    "user-1",
			"agent_type": constants.PaymentsAgentType,
		})
		require.Equal(t, http.StatusAccepted, w.Code)
		var created map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = env.do(t, http.MethodPost, "/api/v1/webhooks/custody/challenge", gin.H{
			"challenge_id":     created["challenge_id"],
			"status":           "success",
			"delegate_address": "0xdelegate",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var settled map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settled))
		assert.Equal(t, "active", settled["status"])

		// Redelivery is acknowledged without reapplying anything.
		w = env.do(t, http.MethodPost, "/api/v1/webhooks/custody/challenge", gin.H{
			"challenge_id": created["challenge_id"],
			"status":       "failure",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settled))
		assert.Equal(t, "active", settled["status"])
	})

	t.Run("unknown challenge", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/api/v1/webhooks/custody/challenge", gin.H{
			"challenge_id": "never-issued",
			"status":       "success",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid status value", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/api/v1/webhooks/custody/challenge", gin.H{
			"challenge_id": "chal-1",
			"status":       "maybe",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
