package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RejectionReason identifies why the enforcer refused an action.
type RejectionReason string

const (
	ReasonNotFound              RejectionReason = "not_found"
	ReasonNotYetActive          RejectionReason = "not_yet_active"
	ReasonInactive              RejectionReason = "inactive"
	ReasonExpired               RejectionReason = "expired"
	ReasonActionNotPermitted    RejectionReason = "action_not_permitted"
	ReasonSpendingLimitExceeded RejectionReason = "spending_limit_exceeded"
	ReasonContention            RejectionReason = "contention"
)

// Decision is the enforcer's answer to an authorization request. A rejected
// decision is a normal result, not an error; infrastructure failures travel
// on the error return instead.
type Decision struct {
	Admitted bool            `json:"admitted"`
	Reason   RejectionReason `json:"reason,omitempty"`
	// Headroom is the remaining budget. On a spending rejection it tells the
	// caller the largest amount that could still be admitted.
	Headroom int64 `json:"headroom"`
}

// Typed service errors returned to callers that must change their request.
var (
	ErrInvalidOverride     = errors.New("requested override exceeds catalog defaults")
	ErrActiveSessionExists = errors.New("wallet already has an active session key")
	ErrRenewalInProgress   = errors.New("a renewal is already in progress for this session key")
	ErrChallengeFailed     = errors.New("custody provider declined the delegation challenge")
	ErrUnknownChallenge    = errors.New("unknown delegation challenge")
	ErrSessionKeyNotFound  = errors.New("session key not found")
	ErrNotRenewable        = errors.New("session key is not eligible for renewal")
)

// CustodyClientInterface is the slice of the custody provider client the
// coordinator needs. Kept local to avoid a dependency on the concrete client.
type CustodyClientInterface interface {
	CreateDelegationChallenge(ctx context.Context, params CustodyChallengeParams) (*CustodyChallengeHandle, error)
}

// CustodyChallengeParams describes the delegation being requested from the
// custody provider. The provider never sees spending counters, only the
// requested bounds.
type CustodyChallengeParams struct {
	WalletID        string
	UserID          string
	SessionKeyID    uuid.UUID
	RequestedKind   string // "create" or "renew"
	AllowedActions  []string
	SpendingLimit   int64
	DurationSeconds int64
}

// CustodyChallengeHandle is the provider's reference for the out-of-band
// approval step (PIN entry, biometric, etc.).
type CustodyChallengeHandle struct {
	ChallengeID string
}

// SessionKeyOverrides narrows catalog defaults at creation time. Nil fields
// inherit the default. Overrides may only narrow, never widen.
type SessionKeyOverrides struct {
	AllowedActions  []string
	SpendingLimit   *int64
	DurationSeconds *int64
	AutoRenew       *bool
	MaxRenewals     *int32
}

// BeginCreateResult is the handle pair returned to the caller that must
// complete the out-of-band approval.
type BeginCreateResult struct {
	SessionKeyID uuid.UUID
	ChallengeID  string
}

// Clock abstracts time.Now so expiry logic is testable. Production code uses
// the real clock.
type Clock func() time.Time
