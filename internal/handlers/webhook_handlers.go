package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/logger"
)

// WebhookHandler handles callbacks from the custody provider
type WebhookHandler struct {
	common *CommonServices
}

// NewWebhookHandler creates a new WebhookHandler instance
func NewWebhookHandler(common *CommonServices) *WebhookHandler {
	return &WebhookHandler{common: common}
}

// ChallengeWebhookRequest is the callback payload sent by the custody provider
// when a delegation challenge settles
type ChallengeWebhookRequest struct {
	ChallengeID     string `json:"challenge_id" binding:"required"`
	Status          string `json:"status" binding:"required,oneof=success failure"`
	DelegateAddress string `json:"delegate_address,omitempty"`
}

// HandleChallengeResult godoc
// @Summary Settle a delegation challenge
// @Description Processes the custody provider's verdict for a pending challenge. Redelivered webhooks are acknowledged without reapplying the transition
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body ChallengeWebhookRequest true "Challenge result"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /webhooks/custody/challenge [post]
func (h *WebhookHandler) HandleChallengeResult(c *gin.Context) {
	var req ChallengeWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid webhook payload", err)
		return
	}

	success := req.Status == "success"
	key, err := h.common.challenges.CompleteChallenge(c.Request.Context(), req.ChallengeID, success, req.DelegateAddress)
	if err != nil {
		handleServiceError(c, err, "Failed to settle delegation challenge")
		return
	}

	logger.Info("Delegation challenge settled",
		zap.String("challengeId", req.ChallengeID),
		zap.String("sessionKeyId", key.ID.String()),
		zap.String("status", string(key.Status)))

	sendSuccess(c, http.StatusOK, gin.H{
		"session_key_id": key.ID.String(),
		"status":         string(key.Status),
	})
}
