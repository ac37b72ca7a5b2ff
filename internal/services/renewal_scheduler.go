package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/keygrant/keygrant-api/internal/db"
	"github.com/keygrant/keygrant-api/internal/logger"
)

// RenewalSchedulerConfig tunes the background renewal loop.
type RenewalSchedulerConfig struct {
	// Interval between scheduler passes.
	Interval time.Duration
	// LookaheadFloor is the minimum look-ahead window; the effective window
	// per key is the larger of this and 10% of the key's original duration.
	LookaheadFloor time.Duration
	// BatchLimit caps how many keys one pass will attempt to renew.
	BatchLimit int32
}

// DefaultRenewalSchedulerConfig provides sensible defaults.
func DefaultRenewalSchedulerConfig() RenewalSchedulerConfig {
	return RenewalSchedulerConfig{
		Interval:       time.Minute,
		LookaheadFloor: 10 * time.Minute,
		BatchLimit:     100,
	}
}

// RenewalScheduler extends sessions nearing expiry when auto-renew is enabled
// and renewal quota remains. Each pass is a stateless job over a
// status-filtered query; the active->renewing conditional transition makes it
// safe to run from multiple instances at once.
type RenewalScheduler struct {
	queries    db.Querier
	challenges *ChallengeService
	config     RenewalSchedulerConfig
	logger     *zap.Logger
	stopCh     chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewRenewalScheduler creates a new renewal scheduler.
func NewRenewalScheduler(queries db.Querier, challenges *ChallengeService, config RenewalSchedulerConfig) *RenewalScheduler {
	if config.Interval <= 0 {
		config.Interval = DefaultRenewalSchedulerConfig().Interval
	}
	if config.LookaheadFloor <= 0 {
		config.LookaheadFloor = DefaultRenewalSchedulerConfig().LookaheadFloor
	}
	if config.BatchLimit <= 0 {
		config.BatchLimit = DefaultRenewalSchedulerConfig().BatchLimit
	}
	return &RenewalScheduler{
		queries:    queries,
		challenges: challenges,
		config:     config,
		logger:     logger.Log,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the recurring renewal passes.
func (s *RenewalScheduler) Start() {
	s.logger.Info("starting renewal scheduler",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("lookahead_floor", s.config.LookaheadFloor))

	s.wg.Add(1)
	go s.run()
}

// Stop gracefully shuts down the scheduler.
func (s *RenewalScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("stopping renewal scheduler")
		close(s.stopCh)
		s.wg.Wait()
	})
}

func (s *RenewalScheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.ProcessDueRenewals(context.Background()); err != nil {
				s.logger.Error("renewal pass failed", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// RenewalResults holds the outcome of one scheduler pass.
type RenewalResults struct {
	Due     int
	Started int
	Skipped int
	Failed  int
}

// ProcessDueRenewals runs a single renewal pass: every active auto-renew key
// with quota left whose expiry falls inside the look-ahead window gets a
// renewal handshake started. Keys already renewing are skipped, failed
// handshakes are left for the next pass.
func (s *RenewalScheduler) ProcessDueRenewals(ctx context.Context) (*RenewalResults, error) {
	keys, err := s.queries.ListSessionKeysDueForRenewal(ctx, db.ListSessionKeysDueForRenewalParams{
		LookaheadFloorSeconds: int64(s.config.LookaheadFloor / time.Second),
		MaxKeys:               s.config.BatchLimit,
	})
	if err != nil {
		return nil, err
	}

	results := &RenewalResults{Due: len(keys)}
	if len(keys) == 0 {
		return results, nil
	}

	s.logger.Info("processing due renewals", zap.Int("count", len(keys)))

	for _, key := range keys {
		_, err := s.challenges.BeginRenewal(ctx, key.ID)
		switch {
		case err == nil:
			results.Started++
		case errors.Is(err, ErrRenewalInProgress), errors.Is(err, ErrNotRenewable):
			// Another instance got there first, or the key changed state
			// between the query and the attempt.
			results.Skipped++
		default:
			results.Failed++
			s.logger.Error("failed to start renewal",
				zap.String("session_key_id", key.ID.String()),
				zap.Error(err))
			// Continue processing other keys.
		}
	}

	s.logger.Info("renewal pass completed",
		zap.Int("due", results.Due),
		zap.Int("started", results.Started),
		zap.Int("skipped", results.Skipped),
		zap.Int("failed", results.Failed))
	return results, nil
}
