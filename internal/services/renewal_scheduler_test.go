package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/keygrant/keygrant-api/internal/constants"
	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/mocks"
	"github.com/keygrant/keygrant-api/internal/services"
	"github.com/keygrant/keygrant-api/internal/testutil"
)

func schedulerConfig() services.RenewalSchedulerConfig {
	return services.RenewalSchedulerConfig{
		Interval:       time.Minute,
		LookaheadFloor: 10 * time.Minute,
		BatchLimit:     100,
	}
}

func seedAutoRenewKey(store *testutil.FakeStore, expiresIn time.Duration, renewalsUsed, maxRenewals int32) db.SessionKey {
	key := db.SessionKey{
		ID:              uuid.New(),
		WalletID:        uuid.NewString(),
		UserID:          "user-1",
		AgentType:       constants.PaymentsAgentType,
		Status:          db.SessionKeyStatusActive,
		AllowedActions:  []string{constants.TransferAction},
		SpendingLimit:   100_00,
		AutoRenew:       true,
		MaxRenewals:     maxRenewals,
		RenewalsUsed:    renewalsUsed,
		DurationSeconds: 3600,
		ExpiresAt:       pgtype.Timestamptz{Time: time.Now().Add(expiresIn), Valid: true},
	}
	store.Seed(key)
	return key
}

func TestRenewalScheduler_ProcessDueRenewals(t *testing.T) {
	ctx := context.Background()

	t.Run("starts handshakes for due keys", func(t *testing.T) {
		store := testutil.NewFakeStore()
		mockCustody := mocks.NewMockCustodyClientForTest(t)
		due := seedAutoRenewKey(store, 5*time.Minute, 0, 4)
		seedAutoRenewKey(store, 2*time.Hour, 0, 4) // outside the window

		mockCustody.EXPECT().CreateDelegationChallenge(gomock.Any(), gomock.Any()).
			Return(&services.CustodyChallengeHandle{ChallengeID: "renew-1"}, nil)

		challenges := services.NewChallengeService(store, services.NewPermissionCatalog(), mockCustody)
		scheduler := services.NewRenewalScheduler(store, challenges, schedulerConfig())

		results, err := scheduler.ProcessDueRenewals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, results.Due)
		assert.Equal(t, 1, results.Started)
		assert.Equal(t, 0, results.Skipped)
		assert.Equal(t, 0, results.Failed)

		current, err := store.GetSessionKey(ctx, due.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusRenewing, current.Status)
	})

	t.Run("no keys due", func(t *testing.T) {
		store := testutil.NewFakeStore()
		mockCustody := mocks.NewMockCustodyClientForTest(t)
		seedAutoRenewKey(store, 2*time.Hour, 0, 4)

		challenges := services.NewChallengeService(store, services.NewPermissionCatalog(), mockCustody)
		scheduler := services.NewRenewalScheduler(store, challenges, schedulerConfig())

		results, err := scheduler.ProcessDueRenewals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, results.Due)
	})

	t.Run("exhausted quota is never picked up", func(t *testing.T) {
		store := testutil.NewFakeStore()
		mockCustody := mocks.NewMockCustodyClientForTest(t)
		seedAutoRenewKey(store, 5*time.Minute, 4, 4)

		challenges := services.NewChallengeService(store, services.NewPermissionCatalog(), mockCustody)
		scheduler := services.NewRenewalScheduler(store, challenges, schedulerConfig())

		results, err := scheduler.ProcessDueRenewals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, results.Due)
	})

	t.Run("custody failure counts as failed and leaves the key usable", func(t *testing.T) {
		store := testutil.NewFakeStore()
		mockCustody := mocks.NewMockCustodyClientForTest(t)
		key := seedAutoRenewKey(store, 5*time.Minute, 0, 4)

		mockCustody.EXPECT().CreateDelegationChallenge(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("custody provider unavailable"))

		challenges := services.NewChallengeService(store, services.NewPermissionCatalog(), mockCustody)
		scheduler := services.NewRenewalScheduler(store, challenges, schedulerConfig())

		results, err := scheduler.ProcessDueRenewals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, results.Due)
		assert.Equal(t, 1, results.Failed)

		current, err := store.GetSessionKey(ctx, key.ID)
		require.NoError(t, err)
		assert.Equal(t, db.SessionKeyStatusActive, current.Status)
	})

	t.Run("overlapping passes skip keys already renewing", func(t *testing.T) {
		mockQuerier := mocks.NewMockQuerierForTest(t)
		mockCustody := mocks.NewMockCustodyClientForTest(t)
		key := db.SessionKey{
			ID:             uuid.New(),
			Status:         db.SessionKeyStatusActive,
			AllowedActions: []string{constants.TransferAction},
			AutoRenew:      true,
			MaxRenewals:    4,
			ExpiresAt:      pgtype.Timestamptz{Time: time.Now().Add(5 * time.Minute), Valid: true},
		}

		mockQuerier.EXPECT().ListSessionKeysDueForRenewal(gomock.Any(), gomock.Any()).
			Return([]db.SessionKey{key}, nil)
		mockQuerier.EXPECT().GetSessionKey(gomock.Any(), key.ID).Return(key, nil)
		// Another instance wins the active->renewing transition.
		mockQuerier.EXPECT().MarkSessionKeyRenewing(gomock.Any(), key.ID).Return(int64(0), nil)

		challenges := services.NewChallengeService(mockQuerier, services.NewPermissionCatalog(), mockCustody)
		scheduler := services.NewRenewalScheduler(mockQuerier, challenges, schedulerConfig())

		results, err := scheduler.ProcessDueRenewals(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, results.Due)
		assert.Equal(t, 1, results.Skipped)
		assert.Equal(t, 0, results.Failed)
	})
}

func TestRenewalScheduler_StartStop(t *testing.T) {
	store := testutil.NewFakeStore()
	mockCustody := mocks.NewMockCustodyClientForTest(t)
	challenges := services.NewChallengeService(store, services.NewPermissionCatalog(), mockCustody)

	config := schedulerConfig()
	config.Interval = 10 * time.Millisecond
	scheduler := services.NewRenewalScheduler(store, challenges, config)

	scheduler.Start()
	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()

	// Stop is idempotent.
	scheduler.Stop()
}
