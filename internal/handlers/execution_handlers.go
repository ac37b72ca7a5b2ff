package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExecutionHandler handles authorization and reversal of agent actions
type ExecutionHandler struct {
	common *CommonServices
}

// NewExecutionHandler creates a new ExecutionHandler instance
func NewExecutionHandler(common *CommonServices) *ExecutionHandler {
	return &ExecutionHandler{common: common}
}

// AuthorizeActionRequest is the payload for an authorization check
type AuthorizeActionRequest struct {
	Action string `json:"action" binding:"required"`
	Amount int64  `json:"amount"`
}

// AuthorizeAction godoc
// @Summary Authorize an agent action
// @Description Applies the full validation gauntlet and atomically reserves the amount against the spending limit. Rejections are returned as 200 responses with admitted=false; only infrastructure failures produce 5xx
// @Tags executions
// @Accept json
// @Produce json
// @Param session_key_id path string true "Session key ID"
// @Param request body AuthorizeActionRequest true "Action to authorize"
// @Success 200 {object} services.Decision
// @Failure 400 {object} ErrorResponse
// @Router /session-keys/{session_key_id}/authorize [post]
func (h *ExecutionHandler) AuthorizeAction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_key_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid session key ID format", err)
		return
	}

	var req AuthorizeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Amount < 0 {
		sendError(c, http.StatusBadRequest, "Amount must not be negative", nil)
		return
	}

	decision, err := h.common.enforcement.Authorize(c.Request.Context(), id, req.Action, req.Amount)
	if err != nil {
		handleServiceError(c, err, "Failed to authorize action")
		return
	}

	sendSuccess(c, http.StatusOK, decision)
}

// ReverseActionRequest is the payload for releasing reserved spend
type ReverseActionRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// ReverseAction godoc
// @Summary Reverse a previously admitted action
// @Description Releases reserved spend after a failed or refunded transfer. The release is clamped so the counter never goes below zero
// @Tags executions
// @Accept json
// @Produce json
// @Param session_key_id path string true "Session key ID"
// @Param request body ReverseActionRequest true "Amount to release"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /session-keys/{session_key_id}/reverse [post]
func (h *ExecutionHandler) ReverseAction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_key_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid session key ID format", err)
		return
	}

	var req ReverseActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Amount <= 0 {
		sendError(c, http.StatusBadRequest, "Amount must be positive", nil)
		return
	}

	if err := h.common.enforcement.Reverse(c.Request.Context(), id, req.Amount); err != nil {
		handleServiceError(c, err, "Failed to reverse action")
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Spend released")
}
