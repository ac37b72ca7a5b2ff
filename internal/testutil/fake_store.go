package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/keygrant/keygrant-api/internal/db"
)

// FakeStore is an in-memory db.Querier used where tests need real
// compare-and-swap behavior under concurrency, which expectation-based
// mocks cannot express. All row mutations happen under one mutex, so
// the conditional updates are atomic exactly like their SQL counterparts.
type FakeStore struct {
	mu          sync.Mutex
	sessionKeys map[uuid.UUID]db.SessionKey
	records     []db.ExecutionRecord
	challenges  map[string]db.DelegationChallenge
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		sessionKeys: make(map[uuid.UUID]db.SessionKey),
		challenges:  make(map[string]db.DelegationChallenge),
	}
}

var _ db.Querier = (*FakeStore)(nil)

// Seed inserts a session key directly, bypassing the pending state.
func (f *FakeStore) Seed(key db.SessionKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	if !key.CreatedAt.Valid {
		key.CreatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	}
	f.sessionKeys[key.ID] = key
}

func (f *FakeStore) ActivateSessionKey(_ context.Context, arg db.ActivateSessionKeyParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[arg.ID]
	if !ok || key.Status != db.SessionKeyStatusPending {
		return 0, nil
	}
	key.Status = db.SessionKeyStatusActive
	if arg.DelegateAddress.Valid {
		key.DelegateAddress = arg.DelegateAddress
	}
	key.ExpiresAt = arg.ExpiresAt
	f.sessionKeys[arg.ID] = key
	return 1, nil
}

func (f *FakeStore) CompleteDelegationChallenge(_ context.Context, arg db.CompleteDelegationChallengeParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.challenges[arg.ID]
	if !ok || ch.Status != db.ChallengeStatusAwaitingConfirmation {
		return 0, nil
	}
	ch.Status = arg.Status
	ch.CompletedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	f.challenges[arg.ID] = ch
	return 1, nil
}

func (f *FakeStore) CreateDelegationChallenge(_ context.Context, arg db.CreateDelegationChallengeParams) (db.DelegationChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := db.DelegationChallenge{
		ID:           arg.ID,
		SessionKeyID: arg.SessionKeyID,
		Kind:         arg.Kind,
		Status:       db.ChallengeStatusAwaitingConfirmation,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.challenges[arg.ID] = ch
	return ch, nil
}

func (f *FakeStore) CreateExecutionRecord(_ context.Context, arg db.CreateExecutionRecordParams) (db.ExecutionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := db.ExecutionRecord{
		ID:           uuid.New(),
		SessionKeyID: arg.SessionKeyID,
		Action:       arg.Action,
		Amount:       arg.Amount,
		Outcome:      arg.Outcome,
		Reason:       arg.Reason,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *FakeStore) CreateSessionKey(_ context.Context, arg db.CreateSessionKeyParams) (db.SessionKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := db.SessionKey{
		ID:              uuid.New(),
		WalletID:        arg.WalletID,
		UserID:          arg.UserID,
		AgentType:       arg.AgentType,
		Status:          db.SessionKeyStatusPending,
		AllowedActions:  arg.AllowedActions,
		SpendingLimit:   arg.SpendingLimit,
		AutoRenew:       arg.AutoRenew,
		MaxRenewals:     arg.MaxRenewals,
		DurationSeconds: arg.DurationSeconds,
		CreatedAt:       pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.sessionKeys[key.ID] = key
	return key, nil
}

func (f *FakeStore) ExpireSessionKey(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[id]
	if !ok || (key.Status != db.SessionKeyStatusActive && key.Status != db.SessionKeyStatusRenewing) {
		return 0, nil
	}
	key.Status = db.SessionKeyStatusExpired
	f.sessionKeys[id] = key
	return 1, nil
}

func (f *FakeStore) FinishSessionKeyRenewal(_ context.Context, arg db.FinishSessionKeyRenewalParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[arg.ID]
	if !ok || key.Status != db.SessionKeyStatusRenewing {
		return 0, nil
	}
	key.Status = db.SessionKeyStatusActive
	key.ExpiresAt = arg.ExpiresAt
	key.RenewalsUsed++
	f.sessionKeys[arg.ID] = key
	return 1, nil
}

func (f *FakeStore) GetActiveSessionKeyByWallet(_ context.Context, walletID string) (db.SessionKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range f.sessionKeys {
		if key.WalletID == walletID && key.Status == db.SessionKeyStatusActive {
			return key, nil
		}
	}
	return db.SessionKey{}, pgx.ErrNoRows
}

func (f *FakeStore) GetDelegationChallenge(_ context.Context, id string) (db.DelegationChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.challenges[id]
	if !ok {
		return db.DelegationChallenge{}, pgx.ErrNoRows
	}
	return ch, nil
}

func (f *FakeStore) GetSessionKey(_ context.Context, id uuid.UUID) (db.SessionKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[id]
	if !ok {
		return db.SessionKey{}, pgx.ErrNoRows
	}
	return key, nil
}

func (f *FakeStore) ListExecutionRecordsBySessionKey(_ context.Context, sessionKeyID uuid.UUID) ([]db.ExecutionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.ExecutionRecord
	for _, rec := range f.records {
		if rec.SessionKeyID == sessionKeyID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *FakeStore) ListSessionKeysByUser(_ context.Context, userID string) ([]db.SessionKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.SessionKey
	for _, key := range f.sessionKeys {
		if key.UserID == userID {
			out = append(out, key)
		}
	}
	return out, nil
}

func (f *FakeStore) ListSessionKeysDueForRenewal(_ context.Context, arg db.ListSessionKeysDueForRenewalParams) ([]db.SessionKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	var out []db.SessionKey
	for _, key := range f.sessionKeys {
		if key.Status != db.SessionKeyStatusActive || !key.AutoRenew {
			continue
		}
		if key.RenewalsUsed >= key.MaxRenewals || !key.ExpiresAt.Valid {
			continue
		}
		lookahead := key.DurationSeconds / 10
		if lookahead < arg.LookaheadFloorSeconds {
			lookahead = arg.LookaheadFloorSeconds
		}
		if key.ExpiresAt.Time.Before(now.Add(time.Duration(lookahead) * time.Second)) {
			out = append(out, key)
		}
		if len(out) == int(arg.MaxKeys) {
			break
		}
	}
	return out, nil
}

func (f *FakeStore) MarkSessionKeyRenewing(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[id]
	if !ok || key.Status != db.SessionKeyStatusActive || key.RenewalsUsed >= key.MaxRenewals {
		return 0, nil
	}
	key.Status = db.SessionKeyStatusRenewing
	f.sessionKeys[id] = key
	return 1, nil
}

func (f *FakeStore) ReleaseSessionKeySpend(_ context.Context, arg db.ReleaseSessionKeySpendParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[arg.ID]
	if !ok || key.SpendingUsed != arg.ExpectedSpendingUsed {
		return 0, nil
	}
	key.SpendingUsed = arg.SpendingUsed
	f.sessionKeys[arg.ID] = key
	return 1, nil
}

func (f *FakeStore) ReserveSessionKeySpend(_ context.Context, arg db.ReserveSessionKeySpendParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[arg.ID]
	if !ok || key.SpendingUsed != arg.ExpectedSpendingUsed {
		return 0, nil
	}
	if key.Status != db.SessionKeyStatusActive && key.Status != db.SessionKeyStatusRenewing {
		return 0, nil
	}
	delta := arg.SpendingUsed - arg.ExpectedSpendingUsed
	if key.SpendingUsed > key.SpendingLimit-delta {
		return 0, nil
	}
	key.SpendingUsed = arg.SpendingUsed
	f.sessionKeys[arg.ID] = key
	return 1, nil
}

func (f *FakeStore) RevertSessionKeyRenewal(_ context.Context, arg db.RevertSessionKeyRenewalParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[arg.ID]
	if !ok || key.Status != db.SessionKeyStatusRenewing {
		return 0, nil
	}
	key.Status = arg.Status
	f.sessionKeys[arg.ID] = key
	return 1, nil
}

func (f *FakeStore) RevokeSessionKey(_ context.Context, arg db.RevokeSessionKeyParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := f.sessionKeys[arg.ID]
	if !ok || key.Status == db.SessionKeyStatusRevoked || key.Status == db.SessionKeyStatusExpired {
		return 0, nil
	}
	key.Status = db.SessionKeyStatusRevoked
	key.RevokedReason = arg.RevokedReason
	f.sessionKeys[arg.ID] = key
	return 1, nil
}

func (f *FakeStore) SumSessionKeySpend(_ context.Context, sessionKeyID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, rec := range f.records {
		if rec.SessionKeyID != sessionKeyID {
			continue
		}
		switch rec.Outcome {
		case db.ExecutionOutcomeAdmitted:
			sum += rec.Amount
		case db.ExecutionOutcomeReversed:
			sum -= rec.Amount
		}
	}
	return sum, nil
}
