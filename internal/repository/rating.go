package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"royale-tracker/internal/constants"
	"royale-tracker/internal/db"
	"royale-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type RatingRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewRatingRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *RatingRepository {
	return &RatingRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// GetOrCreate loads the account's rating state, creating it lazily on first
// sync. When another account already carries a rating for the same player
// tag, the new row is seeded with that shared rating; games_played always
// starts at zero because it is a per-account counter.
func (r *RatingRepository) GetOrCreate(ctx context.Context, accountID, playerTag string) (*domain.RatingState, error) {
	existing, err := r.queries.GetRatingByAccount(ctx, accountID)
	if err == nil {
		if playerTag != "" && existing.PlayerTag != playerTag {
			if err := r.queries.UpdateRatingTag(ctx, db.UpdateRatingTagParams{
				PlayerTag: playerTag,
				UpdatedAt: time.Now(),
				AccountID: accountID,
			}); err != nil {
				return nil, err
			}
			existing.PlayerTag = playerTag
		}
		return toDomainRating(existing), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	elo := int64(constants.DefaultElo)
	var lastUpdated sql.NullTime
	if playerTag != "" {
		sibling, err := r.queries.GetRatingByTag(ctx, playerTag)
		if err == nil {
			elo = sibling.EloRating
			lastUpdated = sibling.LastUpdated
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	now := time.Now()
	if err := r.queries.InsertRating(ctx, db.InsertRatingParams{
		AccountID:   accountID,
		PlayerTag:   playerTag,
		EloRating:   elo,
		GamesPlayed: 0,
		LastUpdated: lastUpdated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("account_id", accountID).
		Str("player_tag", playerTag).
		Int64("elo_rating", elo).
		Msg("created rating state")

	rating := &domain.RatingState{
		AccountID:   accountID,
		PlayerTag:   playerTag,
		EloRating:   int(elo),
		GamesPlayed: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if lastUpdated.Valid {
		rating.LastUpdated = lastUpdated.Time
	}
	return rating, nil
}

// GetByTag returns the rating shared by accounts linked to playerTag; the
// second return value is false when no account carries that tag.
func (r *RatingRepository) GetByTag(ctx context.Context, playerTag string) (*domain.RatingState, bool, error) {
	rating, err := r.queries.GetRatingByTag(ctx, playerTag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return toDomainRating(rating), true, nil
}

// UpdateRatingForTag writes the new rating to every account sharing the tag
// so shared state stays in agreement (last writer wins across accounts).
func (r *RatingRepository) UpdateRatingForTag(ctx context.Context, playerTag string, rating int, lastUpdated time.Time) error {
	return r.queries.UpdateRatingByTag(ctx, db.UpdateRatingByTagParams{
		EloRating:   int64(rating),
		LastUpdated: sql.NullTime{Time: lastUpdated, Valid: true},
		UpdatedAt:   time.Now(),
		PlayerTag:   playerTag,
	})
}

// IncrementGames bumps the per-account rated-game counter.
func (r *RatingRepository) IncrementGames(ctx context.Context, accountID string) error {
	return r.queries.IncrementGamesPlayed(ctx, db.IncrementGamesPlayedParams{
		UpdatedAt: time.Now(),
		AccountID: accountID,
	})
}

// AccountIDsForTag lists every account carrying playerTag.
func (r *RatingRepository) AccountIDsForTag(ctx context.Context, playerTag string) ([]string, error) {
	if playerTag == "" {
		return nil, nil
	}
	return r.queries.ListRatingAccountIDsByTag(ctx, playerTag)
}

// RatingsByTags returns tag -> current rating for the tags that have one.
func (r *RatingRepository) RatingsByTags(ctx context.Context, tags []string) (map[string]int, error) {
	if len(tags) == 0 {
		return map[string]int{}, nil
	}
	ratings, err := r.queries.ListRatingsByTags(ctx, tags)
	if err != nil {
		return nil, err
	}

	result := make(map[string]int, len(ratings))
	for _, rating := range ratings {
		result[rating.PlayerTag] = int(rating.EloRating)
	}
	return result, nil
}

func toDomainRating(rt db.Rating) *domain.RatingState {
	rating := &domain.RatingState{
		AccountID:   rt.AccountID,
		PlayerTag:   rt.PlayerTag,
		EloRating:   int(rt.EloRating),
		GamesPlayed: int(rt.GamesPlayed),
		CreatedAt:   rt.CreatedAt,
		UpdatedAt:   rt.UpdatedAt,
	}
	if rt.LastUpdated.Valid {
		rating.LastUpdated = rt.LastUpdated.Time
	}
	return rating
}
