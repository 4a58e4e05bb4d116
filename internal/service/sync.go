package service

import (
	"context"
	"fmt"
	"sort"
	"time"
	"royale-tracker/internal/api"
	"royale-tracker/internal/config"
	"royale-tracker/internal/constants"
	"royale-tracker/internal/domain"
	"royale-tracker/internal/elo"
	"royale-tracker/internal/metrics"
	"royale-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// BattleSource is the external battle-log API boundary.
type BattleSource interface {
	GetPlayerInfo(ctx context.Context, tag string) (*api.Player, error)
	GetPlayerBattleLog(ctx context.Context, tag string) ([]api.Battle, error)
}

type SyncService struct {
	source  BattleSource
	friends *repository.FriendRepository
	battles *repository.BattleRepository
	ratings *repository.RatingRepository
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewSyncService(
	source BattleSource,
	friends *repository.FriendRepository,
	battles *repository.BattleRepository,
	ratings *repository.RatingRepository,
	cfg *config.Config,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		source:  source,
		friends: friends,
		battles: battles,
		ratings: ratings,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// SyncAccount pulls the account's recent battle log, records qualifying new
// 1v1 battles against tracked friends, updates win/loss counters and
// ratings, then trims old battle rows. The returned error is non-nil only
// for failures that abort the whole account (upstream fetch, friend list,
// rating state); per-battle failures land in the outcome's error list and
// the loop continues. Re-invoking for an unchanged battle log is a no-op
// because inserts are gated by the battles unique index.
func (s *SyncService) SyncAccount(ctx context.Context, accountID, playerTag string) (*domain.SyncOutcome, error) {
	start := time.Now()
	outcome := domain.NewSyncOutcome()

	if playerTag == "" {
		outcome.Errors = append(outcome.Errors, "player tag not linked")
		s.metrics.SyncsTotal.WithLabelValues("error").Inc()
		return outcome, fmt.Errorf("account %s has no player tag", accountID)
	}

	battles, err := s.source.GetPlayerBattleLog(ctx, playerTag)
	if err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to fetch battle log: %v", err))
		s.metrics.SyncsTotal.WithLabelValues("error").Inc()
		return outcome, fmt.Errorf("failed to fetch battle log: %w", err)
	}

	tracked, err := s.friends.TrackedTags(ctx, accountID)
	if err != nil {
		outcome.Errors = append(outcome.Errors, "failed to fetch tracked friends")
		s.metrics.SyncsTotal.WithLabelValues("error").Inc()
		return outcome, fmt.Errorf("failed to fetch tracked friends: %w", err)
	}

	rating, err := s.ratings.GetOrCreate(ctx, accountID, playerTag)
	if err != nil {
		outcome.Errors = append(outcome.Errors, "failed to fetch player rating")
		s.metrics.SyncsTotal.WithLabelValues("error").Inc()
		return outcome, fmt.Errorf("failed to fetch player rating: %w", err)
	}

	oneVOne := FilterOneVOne(battles, s.cfg.AllowedBattleTypes)
	outcome.BattlesProcessed = len(oneVOne)

	// the battle log arrives most recent first; ratings must evolve in play
	// order. The timestamp format sorts lexicographically.
	sort.SliceStable(oneVOne, func(i, j int) bool {
		return oneVOne[i].BattleTime < oneVOne[j].BattleTime
	})

	// Accounts sharing this player tag: when one of them already recorded a
	// battle, the counters and rating deltas were applied then, so this
	// account only stores its own battle row.
	siblings, err := s.siblingAccounts(ctx, accountID, playerTag)
	if err != nil {
		outcome.Errors = append(outcome.Errors, "failed to fetch linked accounts")
		s.metrics.SyncsTotal.WithLabelValues("error").Inc()
		return outcome, fmt.Errorf("failed to fetch linked accounts: %w", err)
	}

	for _, battle := range oneVOne {
		s.processBattle(ctx, accountID, playerTag, battle, tracked, siblings, rating, outcome)
	}

	outcome.DeletedBattles = s.cleanupOldBattles(ctx, accountID)

	s.metrics.SyncsTotal.WithLabelValues("success").Inc()
	s.metrics.SyncDuration.Observe(time.Since(start).Seconds())
	s.logger.Info().
		Str("account_id", accountID).
		Str("player_tag", playerTag).
		Int("battles_processed", outcome.BattlesProcessed).
		Int("new_battles", outcome.NewBattles).
		Int("deleted_battles", outcome.DeletedBattles).
		Int("errors", len(outcome.Errors)).
		Msg("account synced")

	return outcome, nil
}

// processBattle handles one battle; every failure is appended to the outcome
// and the caller moves on to the next battle.
func (s *SyncService) processBattle(
	ctx context.Context,
	accountID, playerTag string,
	battle api.Battle,
	tracked map[string]struct{},
	siblings []string,
	rating *domain.RatingState,
	outcome *domain.SyncOutcome,
) {
	// battles with no opponent record are filtered, not errored
	if len(battle.Opponent) == 0 {
		return
	}
	opponent := battle.Opponent[0]

	if _, ok := tracked[opponent.Tag]; !ok {
		return
	}

	battleTime, err := api.ParseBattleTime(battle.BattleTime)
	if err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to process battle: %v", err))
		return
	}

	exists, err := s.battles.Exists(ctx, accountID, battleTime, battle.Type)
	if err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to process battle: %v", err))
		return
	}
	if exists {
		return
	}

	isWin := battle.Team[0].Crowns > opponent.Crowns
	result := domain.ResultLoss
	if isWin {
		result = domain.ResultWin
	}

	alreadyProcessed, err := s.battles.ExistsForAccounts(ctx, siblings, battleTime, battle.Type)
	if err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to process battle: %v", err))
		return
	}

	err = s.battles.Insert(ctx, accountID, battleTime, battle.Type, opponent.Tag, result)
	if err == repository.ErrDuplicateBattle {
		// lost the insert race to a concurrent sync of the same account
		return
	}
	if err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to process battle: %v", err))
		return
	}
	outcome.NewBattles++
	s.metrics.BattlesInserted.Inc()

	if alreadyProcessed {
		return
	}

	if isWin {
		err = s.friends.IncrementWin(ctx, accountID, opponent.Tag)
	} else {
		err = s.friends.IncrementLoss(ctx, accountID, opponent.Tag)
	}
	if err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to update friend record for %s: %v", opponent.Tag, err))
		return
	}
	outcome.RecordsUpdated++

	s.applyRating(ctx, accountID, playerTag, opponent.Tag, isWin, battleTime, rating, outcome)
}

// applyRating updates both sides of the battle. Each side uses its own
// experience and recency state; the opponent side is skipped when the tag
// was never synced, but its last-known rating still anchors the account's
// own delta.
func (s *SyncService) applyRating(
	ctx context.Context,
	accountID, playerTag, opponentTag string,
	isWin bool,
	battleTime time.Time,
	rating *domain.RatingState,
	outcome *domain.SyncOutcome,
) {
	opponentState, opponentHasRating, err := s.ratings.GetByTag(ctx, opponentTag)
	if err != nil {
		outcome.Errors = append(outcome.Errors, "failed to fetch opponent rating")
		return
	}

	opponentElo := constants.DefaultElo
	if opponentHasRating {
		opponentElo = opponentState.EloRating
	}

	score := 0.0
	if isWin {
		score = 1.0
	}

	days := elo.DaysSince(rating.LastUpdated, battleTime)
	newRating := elo.NewRating(rating.EloRating, opponentElo, score, s.cfg.EloKFactor, rating.GamesPlayed, days)

	if err := s.ratings.UpdateRatingForTag(ctx, playerTag, newRating, battleTime); err != nil {
		outcome.Errors = append(outcome.Errors, "failed to update player rating")
		return
	}
	if err := s.ratings.IncrementGames(ctx, accountID); err != nil {
		outcome.Errors = append(outcome.Errors, "failed to update player rating")
		return
	}
	rating.EloRating = newRating
	rating.GamesPlayed++
	rating.LastUpdated = battleTime

	if !opponentHasRating {
		return
	}

	opponentDays := elo.DaysSince(opponentState.LastUpdated, battleTime)
	newOpponentRating := elo.NewRating(
		opponentState.EloRating,
		rating.EloRating,
		1-score,
		s.cfg.EloKFactor,
		opponentState.GamesPlayed,
		opponentDays,
	)

	// the opponent's games_played is theirs to advance when they sync
	if err := s.ratings.UpdateRatingForTag(ctx, opponentTag, newOpponentRating, battleTime); err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to update opponent rating for %s", opponentTag))
	}
}

func (s *SyncService) siblingAccounts(ctx context.Context, accountID, playerTag string) ([]string, error) {
	ids, err := s.ratings.AccountIDsForTag(ctx, playerTag)
	if err != nil {
		return nil, err
	}
	siblings := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != accountID {
			siblings = append(siblings, id)
		}
	}
	return siblings, nil
}
