package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/logger"
	"github.com/keygrant/keygrant-api/internal/services"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	queries     db.Querier
	challenges  *services.ChallengeService
	enforcement *services.EnforcementService
	sessionKeys *services.SessionKeyService
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(
	queries db.Querier,
	challenges *services.ChallengeService,
	enforcement *services.EnforcementService,
	sessionKeys *services.SessionKeyService,
) *CommonServices {
	return &CommonServices{
		queries:     queries,
		challenges:  challenges,
		enforcement: enforcement,
		sessionKeys: sessionKeys,
	}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError is a helper function that combines logging and error response
// It logs the error with the given message and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps typed service errors to HTTP status codes
func handleServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrSessionKeyNotFound), errors.Is(err, pgx.ErrNoRows):
		sendError(c, http.StatusNotFound, "Session key not found", err)
	case errors.Is(err, services.ErrUnknownChallenge):
		sendError(c, http.StatusNotFound, "Challenge not found", err)
	case errors.Is(err, services.ErrInvalidOverride):
		sendError(c, http.StatusBadRequest, "Requested permissions exceed catalog defaults", err)
	case errors.Is(err, services.ErrActiveSessionExists):
		sendError(c, http.StatusConflict, "Wallet already has an active session key", err)
	case errors.Is(err, services.ErrRenewalInProgress):
		sendError(c, http.StatusConflict, "A renewal is already in progress", err)
	case errors.Is(err, services.ErrNotRenewable):
		sendError(c, http.StatusConflict, "Session key is not eligible for renewal", err)
	default:
		sendError(c, http.StatusInternalServerError, message, err)
	}
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage is a helper function that sends a success message
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList is a helper function that sends a list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}
