package service

import (
	"context"
	"fmt"
	"time"
	"royale-tracker/internal/api"
	"royale-tracker/internal/config"
	"royale-tracker/internal/domain"
	"royale-tracker/internal/metrics"
	"royale-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// syncState tracks one account's progress through a fleet run.
type syncState string

const (
	statePending     syncState = "pending"
	stateFetching    syncState = "fetching"
	stateRateLimited syncState = "rate_limited"
	stateDone        syncState = "done"
	stateFailed      syncState = "failed"
)

type FleetService struct {
	sync     *SyncService
	accounts *repository.AccountRepository
	cfg      *config.Config
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewFleetService(
	syncSvc *SyncService,
	accounts *repository.AccountRepository,
	cfg *config.Config,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *FleetService {
	return &FleetService{
		sync:     syncSvc,
		accounts: accounts,
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}
}

// SyncAll syncs every account that has a linked player tag. Accounts run
// concurrently within fixed-size batches; batch starts are spaced at least
// MinBatchInterval apart (measured start to start, so a slow batch never
// forces extra delay on the next); no new batch starts after FleetDeadline,
// though a started batch always finishes. One account's failure never
// aborts its batch. Only account enumeration is fatal to the run.
func (s *FleetService) SyncAll(ctx context.Context) (*domain.FleetResult, error) {
	start := time.Now()
	s.metrics.FleetRuns.Inc()

	total, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate accounts: %w", err)
	}

	eligible, err := s.listEligibleAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate accounts: %w", err)
	}

	s.logger.Info().
		Int("total_accounts", total).
		Int("accounts_with_tag", len(eligible)).
		Msg("starting fleet sync")

	result := &domain.FleetResult{
		TotalAccounts:   total,
		AccountsWithTag: len(eligible),
		Results:         make([]domain.AccountSyncResult, 0, len(eligible)),
		Errors:          []string{},
	}

	limiter := rate.NewLimiter(rate.Every(s.cfg.MinBatchInterval), 1)
	deadline := start.Add(s.cfg.FleetDeadline)

	for batchStart := 0; batchStart < len(eligible); batchStart += s.cfg.SyncBatchSize {
		if !time.Now().Before(deadline) {
			s.logger.Warn().
				Int("remaining", len(eligible)-batchStart).
				Dur("elapsed", time.Since(start)).
				Msg("fleet deadline reached, skipping remaining accounts")
			break
		}
		if err := limiter.Wait(ctx); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fleet sync interrupted: %v", err))
			break
		}

		end := batchStart + s.cfg.SyncBatchSize
		if end > len(eligible) {
			end = len(eligible)
		}
		batch := eligible[batchStart:end]

		batchResults := make([]domain.AccountSyncResult, len(batch))
		var g errgroup.Group
		for i, account := range batch {
			g.Go(func() error {
				batchResults[i] = s.syncWithRetry(ctx, account)
				return nil
			})
		}
		// goroutines report through batchResults, never an error
		_ = g.Wait()

		for _, r := range batchResults {
			if r.Success {
				result.Succeeded++
			} else {
				result.Failed++
			}
			result.AccountsProcessed++
			result.Results = append(result.Results, r)
		}
	}

	s.logger.Info().
		Int("processed", result.AccountsProcessed).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("fleet sync completed")

	return result, nil
}

// syncWithRetry drives one account through the
// pending -> fetching -> rate_limited -> done|failed state machine.
// A rate-limited sync cools down for RateLimitCooldown and retries exactly
// once; every other failure is final immediately.
func (s *FleetService) syncWithRetry(ctx context.Context, account domain.Account) domain.AccountSyncResult {
	res := domain.AccountSyncResult{
		AccountID: account.ID,
		PlayerTag: account.PlayerTag,
	}

	state := statePending
	backoff := retry.WithMaxRetries(1, retry.NewConstant(s.cfg.RateLimitCooldown))

	var outcome *domain.SyncOutcome
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		state = stateFetching
		var syncErr error
		outcome, syncErr = s.sync.SyncAccount(ctx, account.ID, account.PlayerTag)
		if syncErr != nil && api.IsRateLimited(syncErr) {
			state = stateRateLimited
			s.metrics.RateLimitHits.Inc()
			s.logger.Warn().
				Str("account_id", account.ID).
				Str("player_tag", account.PlayerTag).
				Msg("rate limited, cooling down before retry")
			return retry.RetryableError(syncErr)
		}
		return syncErr
	})

	if err != nil {
		state = stateFailed
		res.Success = false
		res.Error = err.Error()
		res.Outcome = outcome
		s.logger.Error().
			Err(err).
			Str("account_id", account.ID).
			Str("state", string(state)).
			Msg("account sync failed")
		return res
	}

	state = stateDone
	res.Success = true
	res.Outcome = outcome
	s.logger.Debug().
		Str("account_id", account.ID).
		Str("state", string(state)).
		Int("new_battles", outcome.NewBattles).
		Msg("account sync done")
	return res
}

// listEligibleAccounts pages through the account directory; stopping at one
// page would silently drop everything past the page boundary.
func (s *FleetService) listEligibleAccounts(ctx context.Context) ([]domain.Account, error) {
	var eligible []domain.Account
	for offset := 0; ; offset += s.cfg.AccountPageSize {
		page, err := s.accounts.ListWithPlayerTag(ctx, s.cfg.AccountPageSize, offset)
		if err != nil {
			return nil, err
		}
		eligible = append(eligible, page...)
		if len(page) < s.cfg.AccountPageSize {
			return eligible, nil
		}
	}
}
