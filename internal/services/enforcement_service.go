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

// maxAuthorizeAttempts bounds the compare-and-swap retry loop. Exhausting it
// yields a contention rejection instead of blocking.
const maxAuthorizeAttempts = 3

// EnforcementService is the single choke point every agent action passes
// through before the custody provider is asked to sign anything. It only
// reserves budget and returns a decision; it never submits transactions.
type EnforcementService struct {
	queries db.Querier
	logger  *zap.Logger
	now     Clock
}

// NewEnforcementService creates a new enforcement service.
func NewEnforcementService(queries db.Querier) *EnforcementService {
	return &EnforcementService{
		queries: queries,
		logger:  logger.Log,
		now:     time.Now,
	}
}

// WithClock replaces the service clock. Intended for tests.
func (s *EnforcementService) WithClock(now Clock) *EnforcementService {
	s.now = now
	return s
}

// Authorize validates a requested action against the session's permissions
// and atomically reserves spend. The spend reservation is a conditional
// update guarded on the counter value read during validation; a concurrent
// authorization that advances the counter first forces a full re-check, so
// two calls can never jointly overspend the cap against a stale counter.
func (s *EnforcementService) Authorize(ctx context.Context, sessionKeyID uuid.UUID, action string, amount int64) (Decision, error) {
	if amount < 0 {
		return Decision{}, fmt.Errorf("amount must be non-negative, got %d", amount)
	}

	for attempt := 0; attempt < maxAuthorizeAttempts; attempt++ {
		key, err := s.queries.GetSessionKey(ctx, sessionKeyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Decision{Reason: ReasonNotFound}, nil
			}
			return Decision{}, fmt.Errorf("failed to load session key: %w", err)
		}

		if decision, settled := s.checkState(ctx, key, action, amount); settled {
			return decision, nil
		}

		projected := key.SpendingUsed + amount
		affected, err := s.queries.ReserveSessionKeySpend(ctx, db.ReserveSessionKeySpendParams{
			ID:                   key.ID,
			SpendingUsed:         projected,
			ExpectedSpendingUsed: key.SpendingUsed,
		})
		if err != nil {
			return Decision{}, fmt.Errorf("failed to reserve spend: %w", err)
		}
		if affected == 0 {
			// Another authorization advanced the counter; re-check everything
			// against the fresh record.
			continue
		}

		s.record(ctx, key.ID, action, amount, db.ExecutionOutcomeAdmitted, "")
		s.logger.Info("action admitted",
			zap.String("session_key_id", key.ID.String()),
			zap.String("action", action),
			zap.Int64("amount", amount),
			zap.Int64("spending_used", projected))
		return Decision{Admitted: true, Headroom: key.SpendingLimit - projected}, nil
	}

	s.logger.Warn("authorization retries exhausted",
		zap.String("session_key_id", sessionKeyID.String()),
		zap.String("action", action),
		zap.Int64("amount", amount))
	return Decision{Reason: ReasonContention}, nil
}

// checkState runs the fail-fast checks that precede the spend reservation.
// It returns the rejection and true when the request is settled without
// touching the counter.
func (s *EnforcementService) checkState(ctx context.Context, key db.SessionKey, action string, amount int64) (Decision, bool) {
	switch key.Status {
	case db.SessionKeyStatusExpired, db.SessionKeyStatusRevoked:
		s.record(ctx, key.ID, action, amount, db.ExecutionOutcomeRejected, string(ReasonInactive))
		return Decision{Reason: ReasonInactive}, true
	case db.SessionKeyStatusPending:
		s.record(ctx, key.ID, action, amount, db.ExecutionOutcomeRejected, string(ReasonNotYetActive))
		return Decision{Reason: ReasonNotYetActive}, true
	}

	// Expiry is detected lazily at the moment of use, not only by the
	// background sweep.
	if key.ExpiresAt.Valid && !s.now().Before(key.ExpiresAt.Time) {
		if _, err := s.queries.ExpireSessionKey(ctx, key.ID); err != nil {
			s.logger.Error("failed to apply passive expiry",
				zap.String("session_key_id", key.ID.String()),
				zap.Error(err))
		}
		s.record(ctx, key.ID, action, amount, db.ExecutionOutcomeRejected, string(ReasonExpired))
		return Decision{Reason: ReasonExpired}, true
	}

	if !containsAction(key.AllowedActions, action) {
		s.record(ctx, key.ID, action, amount, db.ExecutionOutcomeRejected, string(ReasonActionNotPermitted))
		return Decision{Reason: ReasonActionNotPermitted}, true
	}

	if key.SpendingUsed+amount > key.SpendingLimit {
		headroom := key.SpendingLimit - key.SpendingUsed
		s.record(ctx, key.ID, action, amount, db.ExecutionOutcomeRejected, string(ReasonSpendingLimitExceeded))
		return Decision{Reason: ReasonSpendingLimitExceeded, Headroom: headroom}, true
	}

	return Decision{}, false
}

// Reverse compensates an admitted reservation whose downstream transfer
// failed. The counter is never driven below zero: a reversal larger than the
// reserved spend is clamped and logged as an inconsistency.
func (s *EnforcementService) Reverse(ctx context.Context, sessionKeyID uuid.UUID, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %d", amount)
	}

	for attempt := 0; attempt < maxAuthorizeAttempts; attempt++ {
		key, err := s.queries.GetSessionKey(ctx, sessionKeyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSessionKeyNotFound
			}
			return fmt.Errorf("failed to load session key: %w", err)
		}

		released := amount
		newUsed := key.SpendingUsed - amount
		if newUsed < 0 {
			s.logger.Error("reversal exceeds reserved spend, clamping to zero",
				zap.String("session_key_id", key.ID.String()),
				zap.Int64("amount", amount),
				zap.Int64("spending_used", key.SpendingUsed))
			released = key.SpendingUsed
			newUsed = 0
		}

		affected, err := s.queries.ReleaseSessionKeySpend(ctx, db.ReleaseSessionKeySpendParams{
			ID:                   key.ID,
			SpendingUsed:         newUsed,
			ExpectedSpendingUsed: key.SpendingUsed,
		})
		if err != nil {
			return fmt.Errorf("failed to release spend: %w", err)
		}
		if affected == 0 {
			continue
		}

		s.record(ctx, key.ID, "", released, db.ExecutionOutcomeReversed, "")
		s.logger.Info("spend reversed",
			zap.String("session_key_id", key.ID.String()),
			zap.Int64("amount", released),
			zap.Int64("spending_used", newUsed))
		return nil
	}

	return fmt.Errorf("reversal retries exhausted for session key %s", sessionKeyID)
}

// record appends to the execution ledger. Ledger failures are logged, not
// propagated: the decision already stands and the ledger is reconstructable.
func (s *EnforcementService) record(ctx context.Context, sessionKeyID uuid.UUID, action string, amount int64, outcome db.ExecutionOutcome, reason string) {
	if _, err := s.queries.CreateExecutionRecord(ctx, db.CreateExecutionRecordParams{
		SessionKeyID: sessionKeyID,
		Action:       action,
		Amount:       amount,
		Outcome:      outcome,
		Reason:       pgtype.Text{String: reason, Valid: reason != ""},
	}); err != nil {
		s.logger.Error("failed to append execution record",
			zap.String("session_key_id", sessionKeyID.String()),
			zap.String("outcome", string(outcome)),
			zap.Error(err))
	}
}
