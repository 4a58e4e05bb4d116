package service

import (
	"context"
	"errors"
	"fmt"
	"royale-tracker/internal/api"
	"royale-tracker/internal/domain"
	"royale-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// ErrInvalidPlayerTag marks a tag the battle source does not recognize.
var ErrInvalidPlayerTag = errors.New("invalid player tag")

type FriendService struct {
	source   BattleSource
	accounts *repository.AccountRepository
	friends  *repository.FriendRepository
	ratings  *repository.RatingRepository
	logger   zerolog.Logger
}

func NewFriendService(
	source BattleSource,
	accounts *repository.AccountRepository,
	friends *repository.FriendRepository,
	ratings *repository.RatingRepository,
	logger zerolog.Logger,
) *FriendService {
	return &FriendService{
		source:   source,
		accounts: accounts,
		friends:  friends,
		ratings:  ratings,
		logger:   logger,
	}
}

// AddFriend validates the tag upstream, stores the canonical tag and display
// name, and makes sure the account has a rating row so its first sync starts
// from the default rating.
func (s *FriendService) AddFriend(ctx context.Context, accountID, friendTag string) (*domain.TrackedFriend, error) {
	info, err := s.source.GetPlayerInfo(ctx, friendTag)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, ErrInvalidPlayerTag
		}
		return nil, fmt.Errorf("failed to validate player tag: %w", err)
	}

	friend, err := s.friends.Insert(ctx, accountID, info.Tag, info.Name)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if _, err := s.ratings.GetOrCreate(ctx, accountID, account.PlayerTag); err != nil {
		// the sync path creates it lazily anyway
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("failed to initialize rating state")
	}

	s.logger.Info().
		Str("account_id", accountID).
		Str("friend_tag", info.Tag).
		Str("friend_name", info.Name).
		Msg("friend added")

	return friend, nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, accountID, friendID string) error {
	return s.friends.Delete(ctx, accountID, friendID)
}

func (s *FriendService) ListFriends(ctx context.Context, accountID string) ([]domain.TrackedFriend, error) {
	return s.friends.List(ctx, accountID)
}

// FriendRatings returns tag -> current rating for tags that have one.
func (s *FriendService) FriendRatings(ctx context.Context, tags []string) (map[string]int, error) {
	return s.ratings.RatingsByTags(ctx, tags)
}

// ValidatePlayer checks a tag against the battle source and returns the
// player's profile.
func (s *FriendService) ValidatePlayer(ctx context.Context, tag string) (*api.Player, error) {
	info, err := s.source.GetPlayerInfo(ctx, tag)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, ErrInvalidPlayerTag
		}
		return nil, fmt.Errorf("failed to validate player tag: %w", err)
	}
	return info, nil
}
