package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygrant/keygrant-api/internal/constants"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/services"
	"github.com/keygrant/keygrant-api/internal/testutil"
)

func TestSessionKeyService_GetSessionKey(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns the key", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		svc := services.NewSessionKeyService(store).WithClock(func() time.Time { return now })

		got, err := svc.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, key.ID, got.ID)
		assert.Equal(t, db.SessionKeyStatusActive, got.Status)
	})

	t.Run("overdue key reads as expired", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		svc := services.NewSessionKeyService(store).
			WithClock(func() time.Time { return now.Add(48 * time.Hour) })

		got, err := svc.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusExpired, got.Status)

		// The transition is persisted, not just reported.
		stored, err := store.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusExpired, stored.Status)
	})

	t.Run("unknown key", func(t *testing.T) {
		store := testutil.NewFakeStore()
		svc := services.NewSessionKeyService(store)

		_, err := svc.GetSessionKey(ctx, uuid.New())
		assert.ErrorIs(t, err, services.ErrSessionKeyNotFound)
	})
}

func TestSessionKeyService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes an active key", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		svc := services.NewSessionKeyService(store)

		require.NoError(t, svc.Revoke(ctx, key.ID, constants.UserRequestedReason))

		got, err := store.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusRevoked, got.Status)
		assert.Equal(t, constants.UserRequestedReason, got.RevokedReason.String)
	})

	t.Run("revoking twice is a no-op success", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		svc := services.NewSessionKeyService(store)

		require.NoError(t, svc.Revoke(ctx, key.ID, constants.UserRequestedReason))
		require.NoError(t, svc.Revoke(ctx, key.ID, constants.AnomalyDetectedReason))

		// The original reason survives the duplicate.
		got, err := store.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.UserRequestedReason, got.RevokedReason.String)
	})

	t.Run("revoking an expired key is a no-op success", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		_, err := store.ExpireSessionKey(ctx, key.ID)
		require.NoError(t, err)
		svc := services.NewSessionKeyService(store)

		require.NoError(t, svc.Revoke(ctx, key.ID, constants.UserRequestedReason))

		got, err := store.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusExpired, got.Status)
	})

	t.Run("revoking a pending key closes the handshake window", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key, err := store.CreateSessionKey(ctx, db.CreateSessionKeyParams{
			WalletID: "wallet-1", UserID: "user-1", AgentType: constants.PaymentsAgentType,
			AllowedActions: []string{constants.TransferAction}, SpendingLimit: 100_00,
			DurationSeconds: 3600,
		})
		require.NoError(t, err)
		svc := services.NewSessionKeyService(store)

		require.NoError(t, svc.Revoke(ctx, key.ID, constants.UserRequestedReason))

		got, err := store.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusRevoked, got.Status)
	})

	t.Run("unknown key", func(t *testing.T) {
		store := testutil.NewFakeStore()
		svc := services.NewSessionKeyService(store)

		err := svc.Revoke(ctx, uuid.New(), constants.UserRequestedReason)
		assert.ErrorIs(t, err, services.ErrSessionKeyNotFound)
	})
}

func TestSessionKeyService_ListExecutionRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the ledger", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		svc := services.NewSessionKeyService(store)

		_, err := store.CreateExecutionRecord(ctx, db.CreateExecutionRecordParams{
			SessionKeyID: key.ID,
			Action:       constants.TransferAction,
			Amount:       10_00,
			Outcome:      db.ExecutionOutcomeAdmitted,
		})
		require.NoError(t, err)

		records, err := svc.ListExecutionRecords(ctx, key.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("unknown key", func(t *testing.T) {
		store := testutil.NewFakeStore()
		svc := services.NewSessionKeyService(store)

		_, err := svc.ListExecutionRecords(ctx, uuid.New())
		assert.ErrorIs(t, err, services.ErrSessionKeyNotFound)
	})
}

func TestSessionKeyService_VerifySpendIntegrity(t *testing.T) {
	ctx := context.Background()

	t.Run("counter matching ledger", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := seedActiveKey(store, 100_00)
		svc := services.NewSessionKeyService(store)
		enforcement := services.NewEnforcementService(store).
			WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })

		_, err := enforcement.Authorize(ctx, key.ID, constants.TransferAction, 25_00)
		require.NoError(t, err)

		ok, sum, err := svc.VerifySpendIntegrity(ctx, key.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(25_00), sum)
	})

	t.Run("counter drifted from ledger", func(t *testing.T) {
		store := testutil.NewFakeStore()
		key := db.SessionKey{
			ID:             uuid.New(),
			WalletID:       "wallet-1",
			UserID:         "user-1",
			Status:         db.SessionKeyStatusActive,
			AllowedActions: []string{constants.TransferAction},
			SpendingLimit:  100_00,
			SpendingUsed:   99_00,
			ExpiresAt:      pgtype.Timestamptz{Time: time.Now().Add(time.Hour), Valid: true},
		}
		store.Seed(key)
		svc := services.NewSessionKeyService(store)

		ok, sum, err := svc.VerifySpendIntegrity(ctx, key.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(0), sum)
	})
}
