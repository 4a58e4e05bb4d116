package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"royale-tracker/internal/db"
	"royale-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// ErrAlreadyTracking is returned when the (account, friend_tag) unique
// constraint rejects an insert.
var ErrAlreadyTracking = errors.New("already tracking this friend")

type FriendRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewFriendRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *FriendRepository {
	return &FriendRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// TrackedTags returns the set of opponent tags the account follows.
func (r *FriendRepository) TrackedTags(ctx context.Context, accountID string) (map[string]struct{}, error) {
	tags, err := r.queries.GetTrackedFriendTags(ctx, accountID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set, nil
}

func (r *FriendRepository) List(ctx context.Context, accountID string) ([]domain.TrackedFriend, error) {
	friends, err := r.queries.ListTrackedFriends(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TrackedFriend, len(friends))
	for i, f := range friends {
		result[i] = toDomainFriend(f)
	}
	return result, nil
}

func (r *FriendRepository) GetByTag(ctx context.Context, accountID, friendTag string) (*domain.TrackedFriend, error) {
	friend, err := r.queries.GetTrackedFriendByTag(ctx, db.GetTrackedFriendByTagParams{
		AccountID: accountID,
		FriendTag: friendTag,
	})
	if err != nil {
		return nil, err
	}
	f := toDomainFriend(friend)
	return &f, nil
}

func (r *FriendRepository) Insert(ctx context.Context, accountID, friendTag, friendName string) (*domain.TrackedFriend, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = r.queries.InsertTrackedFriend(ctx, db.InsertTrackedFriendParams{
		ID:         id,
		AccountID:  accountID,
		FriendTag:  friendTag,
		FriendName: friendName,
		Wins:       0,
		Losses:     0,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return nil, ErrAlreadyTracking
	}
	if err != nil {
		return nil, err
	}

	return &domain.TrackedFriend{
		ID:         id,
		AccountID:  accountID,
		FriendTag:  friendTag,
		FriendName: friendName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (r *FriendRepository) Delete(ctx context.Context, accountID, friendID string) error {
	return r.queries.DeleteTrackedFriend(ctx, db.DeleteTrackedFriendParams{
		ID:        friendID,
		AccountID: accountID,
	})
}

// IncrementWin bumps the win counter with a server-side increment so
// concurrent syncs never lose updates to a read-modify-write race.
func (r *FriendRepository) IncrementWin(ctx context.Context, accountID, friendTag string) error {
	return r.queries.IncrementFriendWins(ctx, db.IncrementFriendWinsParams{
		UpdatedAt: time.Now(),
		AccountID: accountID,
		FriendTag: friendTag,
	})
}

func (r *FriendRepository) IncrementLoss(ctx context.Context, accountID, friendTag string) error {
	return r.queries.IncrementFriendLosses(ctx, db.IncrementFriendLossesParams{
		UpdatedAt: time.Now(),
		AccountID: accountID,
		FriendTag: friendTag,
	})
}

func toDomainFriend(f db.TrackedFriend) domain.TrackedFriend {
	return domain.TrackedFriend{
		ID:         f.ID,
		AccountID:  f.AccountID,
		FriendTag:  f.FriendTag,
		FriendName: f.FriendName,
		Wins:       int(f.Wins),
		Losses:     int(f.Losses),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
