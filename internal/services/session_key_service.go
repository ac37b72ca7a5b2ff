package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/logger"
)

// SessionKeyService owns the lifecycle reads and the revocation path.
// Revocation is total: it never fails over the state machine, it only
// transitions or no-ops.
type SessionKeyService struct {
	queries db.Querier
	logger  *zap.Logger
	now     Clock
}

// NewSessionKeyService creates a new session key service.
func NewSessionKeyService(queries db.Querier) *SessionKeyService {
	return &SessionKeyService{
		queries: queries,
		logger:  logger.Log,
		now:     time.Now,
	}
}

// WithClock replaces the service clock. Intended for tests.
func (s *SessionKeyService) WithClock(now Clock) *SessionKeyService {
	s.now = now
	return s
}

// GetSessionKey returns the session key with passive expiry applied: a key
// read past its expiry is transitioned before it is returned, so no caller
// ever observes an overdue key as active.
func (s *SessionKeyService) GetSessionKey(ctx context.Context, id uuid.UUID) (db.SessionKey, error) {
	key, err := s.queries.GetSessionKey(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.SessionKey{}, ErrSessionKeyNotFound
		}
		return db.SessionKey{}, fmt.Errorf("failed to load session key: %w", err)
	}

	if s.isOverdue(key) {
		if _, err := s.queries.ExpireSessionKey(ctx, key.ID); err != nil {
			s.logger.Error("failed to apply passive expiry",
				zap.String("session_key_id", key.ID.String()),
				zap.Error(err))
		} else {
			key.Status = db.SessionKeyStatusExpired
		}
	}

	return key, nil
}

// ListSessionKeysByUser returns all session keys owned by a user, newest
// first.
func (s *SessionKeyService) ListSessionKeysByUser(ctx context.Context, userID string) ([]db.SessionKey, error) {
	return s.queries.ListSessionKeysByUser(ctx, userID)
}

// Revoke invalidates a session key immediately and unconditionally. It is
// idempotent: revoking an already-terminal key is a no-op success, and
// history is preserved either way.
func (s *SessionKeyService) Revoke(ctx context.Context, id uuid.UUID, reason string) error {
	affected, err := s.queries.RevokeSessionKey(ctx, db.RevokeSessionKeyParams{
		ID:            id,
		RevokedReason: pgtype.Text{String: reason, Valid: reason != ""},
	})
	if err != nil {
		return fmt.Errorf("failed to revoke session key: %w", err)
	}

	if affected == 0 {
		// Already terminal, or unknown. Distinguish only for the caller's 404.
		if _, err := s.queries.GetSessionKey(ctx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSessionKeyNotFound
			}
			return fmt.Errorf("failed to load session key: %w", err)
		}
		s.logger.Info("revocation no-op on terminal session key",
			zap.String("session_key_id", id.String()))
		return nil
	}

	s.logger.Info("session key revoked",
		zap.String("session_key_id", id.String()),
		zap.String("reason", reason))
	return nil
}

// ListExecutionRecords returns the append-only ledger for a session key.
func (s *SessionKeyService) ListExecutionRecords(ctx context.Context, id uuid.UUID) ([]db.ExecutionRecord, error) {
	if _, err := s.queries.GetSessionKey(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionKeyNotFound
		}
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}
	return s.queries.ListExecutionRecordsBySessionKey(ctx, id)
}

// VerifySpendIntegrity reconstructs spending_used from the ledger and
// compares it to the counter. A mismatch means the counter was corrupted;
// the ledger is the source of truth.
func (s *SessionKeyService) VerifySpendIntegrity(ctx context.Context, id uuid.UUID) (bool, int64, error) {
	key, err := s.queries.GetSessionKey(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, ErrSessionKeyNotFound
		}
		return false, 0, fmt.Errorf("failed to load session key: %w", err)
	}

	ledgerSum, err := s.queries.SumSessionKeySpend(ctx, id)
	if err != nil {
		return false, 0, fmt.Errorf("failed to sum execution records: %w", err)
	}

	if ledgerSum != key.SpendingUsed {
		s.logger.Error("spend counter does not match ledger",
			zap.String("session_key_id", id.String()),
			zap.Int64("counter", key.SpendingUsed),
			zap.Int64("ledger", ledgerSum))
		return false, ledgerSum, nil
	}
	return true, ledgerSum, nil
}

func (s *SessionKeyService) isOverdue(key db.SessionKey) bool {
	switch key.Status {
	case db.SessionKeyStatusActive, db.SessionKeyStatusRenewing:
		return key.ExpiresAt.Valid && !s.now().Before(key.ExpiresAt.Time)
	default:
		return false
	}
}
