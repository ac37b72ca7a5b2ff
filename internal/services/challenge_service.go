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

	"github.com/keygrant/keygrant-api/internal/constants"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/logger"
)

// ChallengeService drives the handshake that binds a session key to a wallet
// through the custody provider. It never handles signing material itself:
// it persists intent, hands the caller a challenge reference for the
// out-of-band approval, and applies the provider's asynchronous verdict.
type ChallengeService struct {
	queries db.Querier
	catalog *PermissionCatalog
	custody CustodyClientInterface
	logger  *zap.Logger
	now     Clock
}

// NewChallengeService creates a new challenge service.
func NewChallengeService(queries db.Querier, catalog *PermissionCatalog, custody CustodyClientInterface) *ChallengeService {
	return &ChallengeService{
		queries: queries,
		catalog: catalog,
		custody: custody,
		logger:  logger.Log,
		now:     time.Now,
	}
}

// WithClock replaces the service clock. Intended for tests.
func (s *ChallengeService) WithClock(now Clock) *ChallengeService {
	s.now = now
	return s
}

// BeginCreate starts the delegation handshake for a new session key. The key
// is persisted in pending state and stays powerless until the custody
// provider confirms the challenge. Overrides may only narrow the catalog
// defaults for the agent type; any attempt to widen returns
// ErrInvalidOverride.
func (s *ChallengeService) BeginCreate(ctx context.Context, walletID, userID, agentType string, overrides *SessionKeyOverrides) (*BeginCreateResult, error) {
	merged, autoRenew, err := s.mergeOverrides(agentType, overrides)
	if err != nil {
		return nil, err
	}

	// One active session per wallet. The partial unique index backstops the
	// pending->active race at activation time.
	_, err = s.queries.GetActiveSessionKeyByWallet(ctx, walletID)
	if err == nil {
		return nil, ErrActiveSessionExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check for active session key: %w", err)
	}

	key, err := s.queries.CreateSessionKey(ctx, db.CreateSessionKeyParams{
		WalletID:        walletID,
		UserID:          userID,
		AgentType:       agentType,
		AllowedActions:  merged.AllowedActions,
		SpendingLimit:   merged.SpendingLimit,
		AutoRenew:       autoRenew,
		MaxRenewals:     merged.MaxRenewals,
		DurationSeconds: merged.DurationSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session key: %w", err)
	}

	handle, err := s.custody.CreateDelegationChallenge(ctx, CustodyChallengeParams{
		WalletID:        walletID,
		UserID:          userID,
		SessionKeyID:    key.ID,
		RequestedKind:   string(db.ChallengeKindCreate),
		AllowedActions:  merged.AllowedActions,
		SpendingLimit:   merged.SpendingLimit,
		DurationSeconds: merged.DurationSeconds,
	})
	if err != nil {
		// A pending key with no challenge can never be granted; close it out.
		if _, revokeErr := s.queries.RevokeSessionKey(ctx, db.RevokeSessionKeyParams{
			ID:            key.ID,
			RevokedReason: pgtype.Text{String: constants.ChallengeAbortedReason, Valid: true},
		}); revokeErr != nil {
			s.logger.Error("failed to revoke session key after challenge request failure",
				zap.String("session_key_id", key.ID.String()),
				zap.Error(revokeErr))
		}
		return nil, fmt.Errorf("failed to request delegation challenge: %w", err)
	}

	if _, err := s.queries.CreateDelegationChallenge(ctx, db.CreateDelegationChallengeParams{
		ID:           handle.ChallengeID,
		SessionKeyID: key.ID,
		Kind:         db.ChallengeKindCreate,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist delegation challenge: %w", err)
	}

	s.logger.Info("delegation challenge created",
		zap.String("session_key_id", key.ID.String()),
		zap.String("challenge_id", handle.ChallengeID),
		zap.String("wallet_id", walletID),
		zap.String("agent_type", agentType))

	return &BeginCreateResult{SessionKeyID: key.ID, ChallengeID: handle.ChallengeID}, nil
}

// BeginRenewal starts the renewal handshake for an active session key. The
// active->renewing transition is a conditional update, so overlapping
// scheduler passes (or a concurrent manual renewal) cannot both begin one.
func (s *ChallengeService) BeginRenewal(ctx context.Context, sessionKeyID uuid.UUID) (*BeginCreateResult, error) {
	key, err := s.queries.GetSessionKey(ctx, sessionKeyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionKeyNotFound
		}
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}

	switch {
	case key.Status == db.SessionKeyStatusRenewing:
		return nil, ErrRenewalInProgress
	case key.Status != db.SessionKeyStatusActive:
		return nil, ErrNotRenewable
	case key.RenewalsUsed >= key.MaxRenewals:
		return nil, ErrNotRenewable
	}

	affected, err := s.queries.MarkSessionKeyRenewing(ctx, sessionKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark session key renewing: %w", err)
	}
	if affected == 0 {
		// Lost the race to another renewal attempt or a status change.
		return nil, ErrRenewalInProgress
	}

	handle, err := s.custody.CreateDelegationChallenge(ctx, CustodyChallengeParams{
		WalletID:        key.WalletID,
		UserID:          key.UserID,
		SessionKeyID:    key.ID,
		RequestedKind:   string(db.ChallengeKindRenew),
		AllowedActions:  key.AllowedActions,
		SpendingLimit:   key.SpendingLimit,
		DurationSeconds: key.DurationSeconds,
	})
	if err != nil {
		s.revertRenewal(ctx, key)
		return nil, fmt.Errorf("failed to request renewal challenge: %w", err)
	}

	if _, err := s.queries.CreateDelegationChallenge(ctx, db.CreateDelegationChallengeParams{
		ID:           handle.ChallengeID,
		SessionKeyID: key.ID,
		Kind:         db.ChallengeKindRenew,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist renewal challenge: %w", err)
	}

	s.logger.Info("renewal challenge created",
		zap.String("session_key_id", key.ID.String()),
		zap.String("challenge_id", handle.ChallengeID))

	return &BeginCreateResult{SessionKeyID: key.ID, ChallengeID: handle.ChallengeID}, nil
}

// CompleteChallenge applies the custody provider's verdict. It is idempotent:
// the confirmation channel may deliver duplicates, and completing an
// already-settled challenge is a no-op that returns the session key as it
// stands. A completion arriving after a revocation changes nothing.
func (s *ChallengeService) CompleteChallenge(ctx context.Context, challengeID string, success bool, delegateAddress string) (db.SessionKey, error) {
	ch, err := s.queries.GetDelegationChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.SessionKey{}, ErrUnknownChallenge
		}
		return db.SessionKey{}, fmt.Errorf("failed to load delegation challenge: %w", err)
	}

	if ch.Status != db.ChallengeStatusAwaitingConfirmation {
		return s.queries.GetSessionKey(ctx, ch.SessionKeyID)
	}

	verdict := db.ChallengeStatusConfirmed
	if !success {
		verdict = db.ChallengeStatusFailed
	}
	affected, err := s.queries.CompleteDelegationChallenge(ctx, db.CompleteDelegationChallengeParams{
		ID:     challengeID,
		Status: verdict,
	})
	if err != nil {
		return db.SessionKey{}, fmt.Errorf("failed to complete delegation challenge: %w", err)
	}
	if affected == 0 {
		// A concurrent delivery settled it first.
		return s.queries.GetSessionKey(ctx, ch.SessionKeyID)
	}

	key, err := s.queries.GetSessionKey(ctx, ch.SessionKeyID)
	if err != nil {
		return db.SessionKey{}, fmt.Errorf("failed to load session key: %w", err)
	}

	switch ch.Kind {
	case db.ChallengeKindCreate:
		err = s.settleCreate(ctx, key, success, delegateAddress)
	case db.ChallengeKindRenew:
		err = s.settleRenewal(ctx, key, success)
	default:
		err = fmt.Errorf("unexpected challenge kind: %s", ch.Kind)
	}
	if err != nil {
		return db.SessionKey{}, err
	}

	return s.queries.GetSessionKey(ctx, ch.SessionKeyID)
}

func (s *ChallengeService) settleCreate(ctx context.Context, key db.SessionKey, success bool, delegateAddress string) error {
	if !success {
		// A failed challenge must never leave a key that could later be
		// mistaken for grantable.
		if _, err := s.queries.RevokeSessionKey(ctx, db.RevokeSessionKeyParams{
			ID:            key.ID,
			RevokedReason: pgtype.Text{String: constants.ChallengeFailedReason, Valid: true},
		}); err != nil {
			return fmt.Errorf("failed to revoke session key after failed challenge: %w", err)
		}
		s.logger.Warn("delegation challenge failed, session key revoked",
			zap.String("session_key_id", key.ID.String()))
		return nil
	}

	expiresAt := s.now().Add(time.Duration(key.DurationSeconds) * time.Second)
	affected, err := s.queries.ActivateSessionKey(ctx, db.ActivateSessionKeyParams{
		ID:              key.ID,
		DelegateAddress: pgtype.Text{String: delegateAddress, Valid: delegateAddress != ""},
		ExpiresAt:       pgtype.Timestamptz{Time: expiresAt, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to activate session key: %w", err)
	}
	if affected == 0 {
		// Revoked while the challenge was pending; the revocation wins.
		s.logger.Info("challenge confirmed for a key no longer pending",
			zap.String("session_key_id", key.ID.String()),
			zap.String("status", string(key.Status)))
		return nil
	}

	s.logger.Info("session key activated",
		zap.String("session_key_id", key.ID.String()),
		zap.Time("expires_at", expiresAt))
	return nil
}

func (s *ChallengeService) settleRenewal(ctx context.Context, key db.SessionKey, success bool) error {
	if !success {
		s.revertRenewal(ctx, key)
		return nil
	}

	// Renewal re-authorizes time, not budget: expiry is extended by the
	// original duration and spending_used is carried over untouched.
	newExpiry := key.ExpiresAt.Time.Add(time.Duration(key.DurationSeconds) * time.Second)
	affected, err := s.queries.FinishSessionKeyRenewal(ctx, db.FinishSessionKeyRenewalParams{
		ID:        key.ID,
		ExpiresAt: pgtype.Timestamptz{Time: newExpiry, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to finish session key renewal: %w", err)
	}
	if affected == 0 {
		s.logger.Info("renewal confirmed for a key no longer renewing",
			zap.String("session_key_id", key.ID.String()))
		return nil
	}

	s.logger.Info("session key renewed",
		zap.String("session_key_id", key.ID.String()),
		zap.Time("expires_at", newExpiry))
	return nil
}

// revertRenewal puts a renewing key back to active if it still has time on
// the clock, or expires it otherwise. A failed renewal is never fatal to an
// otherwise-valid session.
func (s *ChallengeService) revertRenewal(ctx context.Context, key db.SessionKey) {
	target := db.SessionKeyStatusActive
	if key.ExpiresAt.Valid && !s.now().Before(key.ExpiresAt.Time) {
		target = db.SessionKeyStatusExpired
	}
	if _, err := s.queries.RevertSessionKeyRenewal(ctx, db.RevertSessionKeyRenewalParams{
		ID:     key.ID,
		Status: target,
	}); err != nil {
		s.logger.Error("failed to revert renewal",
			zap.String("session_key_id", key.ID.String()),
			zap.Error(err))
		return
	}
	s.logger.Warn("renewal reverted",
		zap.String("session_key_id", key.ID.String()),
		zap.String("status", string(target)))
}

// mergeOverrides applies narrowing-only overrides on top of the catalog
// defaults and reports the effective auto-renew flag.
func (s *ChallengeService) mergeOverrides(agentType string, overrides *SessionKeyOverrides) (AgentTypeDefaults, bool, error) {
	merged := s.catalog.DefaultsFor(agentType)
	autoRenew := false
	if overrides == nil {
		return merged, autoRenew, nil
	}

	if overrides.SpendingLimit != nil {
		if *overrides.SpendingLimit > merged.SpendingLimit || *overrides.SpendingLimit < 0 {
			return AgentTypeDefaults{}, false, ErrInvalidOverride
		}
		merged.SpendingLimit = *overrides.SpendingLimit
	}
	if overrides.DurationSeconds != nil {
		if *overrides.DurationSeconds > merged.DurationSeconds || *overrides.DurationSeconds <= 0 {
			return AgentTypeDefaults{}, false, ErrInvalidOverride
		}
		merged.DurationSeconds = *overrides.DurationSeconds
	}
	if overrides.AllowedActions != nil {
		for _, action := range overrides.AllowedActions {
			if !containsAction(merged.AllowedActions, action) {
				return AgentTypeDefaults{}, false, ErrInvalidOverride
			}
		}
		merged.AllowedActions = overrides.AllowedActions
	}
	if overrides.MaxRenewals != nil {
		if *overrides.MaxRenewals > merged.MaxRenewals || *overrides.MaxRenewals < 0 {
			return AgentTypeDefaults{}, false, ErrInvalidOverride
		}
		merged.MaxRenewals = *overrides.MaxRenewals
	}
	if overrides.AutoRenew != nil {
		autoRenew = *overrides.AutoRenew
	}

	return merged, autoRenew, nil
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
