package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/keygrant/keygrant-api/internal/constants"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/services"
)

// SessionKeyHandler handles session key lifecycle operations
type SessionKeyHandler struct {
	common *CommonServices
}

// NewSessionKeyHandler creates a new SessionKeyHandler instance
func NewSessionKeyHandler(common *CommonServices) *SessionKeyHandler {
	return &SessionKeyHandler{common: common}
}

// CreateSessionKeyRequest is the payload for creating a session key
type CreateSessionKeyRequest struct {
	WalletID  string                      `json:"wallet_id" binding:"required"`
	UserID    string                      `json:"user_id" binding:"required"`
	AgentType string                      `json:"agent_type" binding:"required"`
	Overrides *SessionKeyOverridesRequest `json:"overrides,omitempty"`
}

// SessionKeyOverridesRequest narrows the catalog defaults for the agent type
type SessionKeyOverridesRequest struct {
	AllowedActions  []string `json:"allowed_actions,omitempty"`
	SpendingLimit   *int64   `json:"spending_limit,omitempty"`
	DurationSeconds *int64   `json:"duration_seconds,omitempty"`
	AutoRenew       *bool    `json:"auto_renew,omitempty"`
	MaxRenewals     *int32   `json:"max_renewals,omitempty"`
}

// SessionKeyResponse is the read model exposed to the UI
type SessionKeyResponse struct {
	SessionKeyID     string     `json:"session_key_id"`
	WalletID         string     `json:"wallet_id"`
	UserID           string     `json:"user_id"`
	AgentType        string     `json:"agent_type"`
	DelegateAddress  string     `json:"delegate_address,omitempty"`
	Status           string     `json:"status"`
	AllowedActions   []string   `json:"allowed_actions"`
	SpendingLimit    int64      `json:"spending_limit"`
	SpendingUsed     int64      `json:"spending_used"`
	SpendingHeadroom int64      `json:"spending_headroom"`
	AutoRenew        bool       `json:"auto_renew"`
	MaxRenewals      int32      `json:"max_renewals"`
	RenewalsUsed     int32      `json:"renewals_used"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

func toSessionKeyResponse(key db.SessionKey) SessionKeyResponse {
	resp := SessionKeyResponse{
		SessionKeyID:     key.ID.String(),
		WalletID:         key.WalletID,
		UserID:           key.UserID,
		AgentType:        key.AgentType,
		Status:           string(key.Status),
		AllowedActions:   key.AllowedActions,
		SpendingLimit:    key.SpendingLimit,
		SpendingUsed:     key.SpendingUsed,
		SpendingHeadroom: key.SpendingLimit - key.SpendingUsed,
		AutoRenew:        key.AutoRenew,
		MaxRenewals:      key.MaxRenewals,
		RenewalsUsed:     key.RenewalsUsed,
		CreatedAt:        key.CreatedAt.Time,
	}
	if key.DelegateAddress.Valid {
		resp.DelegateAddress = key.DelegateAddress.String
	}
	if key.ExpiresAt.Valid {
		t := key.ExpiresAt.Time
		resp.ExpiresAt = &t
	}
	return resp
}

// CreateSessionKey godoc
// @Summary Create a session key
// @Description Starts the delegation handshake for a new session key; the key stays pending until the custody provider confirms the challenge
// @Tags session-keys
// @Accept json
// @Produce json
// @Param request body CreateSessionKeyRequest true "Session key request"
// @Success 202 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /session-keys [post]
func (h *SessionKeyHandler) CreateSessionKey(c *gin.Context) {
	var req CreateSessionKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var overrides *services.SessionKeyOverrides
	if req.Overrides != nil {
		overrides = &services.SessionKeyOverrides{
			AllowedActions:  req.Overrides.AllowedActions,
			SpendingLimit:   req.Overrides.SpendingLimit,
			DurationSeconds: req.Overrides.DurationSeconds,
			AutoRenew:       req.Overrides.AutoRenew,
			MaxRenewals:     req.Overrides.MaxRenewals,
		}
	}

	result, err := h.common.challenges.BeginCreate(c.Request.Context(), req.WalletID, req.UserID, req.AgentType, overrides)
	if err != nil {
		handleServiceError(c, err, "Failed to create session key")
		return
	}

	sendSuccess(c, http.StatusAccepted, gin.H{
		"session_key_id": result.SessionKeyID.String(),
		"challenge_id":   result.ChallengeID,
	})
}

// GetSessionKey godoc
// @Summary Get a session key
// @Description Returns the session key read model; expiry is applied lazily at read time
// @Tags session-keys
// @Produce json
// @Param session_key_id path string true "Session key ID"
// @Success 200 {object} SessionKeyResponse
// @Failure 404 {object} ErrorResponse
// @Router /session-keys/{session_key_id} [get]
func (h *SessionKeyHandler) GetSessionKey(c *gin.Context) {
	id, ok := h.parseSessionKeyID(c)
	if !ok {
		return
	}

	key, err := h.common.sessionKeys.GetSessionKey(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch session key")
		return
	}

	sendSuccess(c, http.StatusOK, toSessionKeyResponse(key))
}

// ListSessionKeys godoc
// @Summary List session keys for a user
// @Tags session-keys
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /session-keys [get]
func (h *SessionKeyHandler) ListSessionKeys(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		sendError(c, http.StatusBadRequest, "user_id query parameter is required", nil)
		return
	}

	keys, err := h.common.sessionKeys.ListSessionKeysByUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Failed to list session keys")
		return
	}

	items := make([]SessionKeyResponse, 0, len(keys))
	for _, key := range keys {
		items = append(items, toSessionKeyResponse(key))
	}
	sendList(c, items)
}

// RenewSessionKey godoc
// @Summary Renew a session key
// @Description Starts a renewal handshake on demand, using the same machinery as the background scheduler
// @Tags session-keys
// @Produce json
// @Param session_key_id path string true "Session key ID"
// @Success 202 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /session-keys/{session_key_id}/renew [post]
func (h *SessionKeyHandler) RenewSessionKey(c *gin.Context) {
	id, ok := h.parseSessionKeyID(c)
	if !ok {
		return
	}

	result, err := h.common.challenges.BeginRenewal(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to renew session key")
		return
	}

	sendSuccess(c, http.StatusAccepted, gin.H{
		"session_key_id": result.SessionKeyID.String(),
		"challenge_id":   result.ChallengeID,
	})
}

// RevokeSessionKeyRequest is the payload for revoking a session key
type RevokeSessionKeyRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RevokeSessionKey godoc
// @Summary Revoke a session key
// @Description Immediate, idempotent invalidation; revoking a terminal key is a no-op success
// @Tags session-keys
// @Accept json
// @Produce json
// @Param session_key_id path string true "Session key ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /session-keys/{session_key_id}/revoke [post]
func (h *SessionKeyHandler) RevokeSessionKey(c *gin.Context) {
	id, ok := h.parseSessionKeyID(c)
	if !ok {
		return
	}

	var req RevokeSessionKeyRequest
	_ = c.ShouldBindJSON(&req)
	reason := req.Reason
	if reason == "" {
		reason = constants.UserRequestedReason
	}

	if err := h.common.sessionKeys.Revoke(c.Request.Context(), id, reason); err != nil {
		handleServiceError(c, err, "Failed to revoke session key")
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Session key revoked")
}

// ListExecutionRecords godoc
// @Summary List the execution ledger for a session key
// @Tags session-keys
// @Produce json
// @Param session_key_id path string true "Session key ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /session-keys/{session_key_id}/executions [get]
func (h *SessionKeyHandler) ListExecutionRecords(c *gin.Context) {
	id, ok := h.parseSessionKeyID(c)
	if !ok {
		return
	}

	records, err := h.common.sessionKeys.ListExecutionRecords(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to list execution records")
		return
	}

	type recordResponse struct {
		Action    string    `json:"action,omitempty"`
		Amount    int64     `json:"amount"`
		Outcome   string    `json:"outcome"`
		Reason    string    `json:"reason,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
	items := make([]recordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, recordResponse{
			Action:    r.Action,
			Amount:    r.Amount,
			Outcome:   string(r.Outcome),
			Reason:    r.Reason.String,
			CreatedAt: r.CreatedAt.Time,
		})
	}
	sendList(c, items)
}

func (h *SessionKeyHandler) parseSessionKeyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_key_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid session key ID format", err)
		return uuid.Nil, false
	}
	return id, true
}
