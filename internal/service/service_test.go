package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
	"royale-tracker/internal/api"
	"royale-tracker/internal/config"
	"royale-tracker/internal/constants"
	"royale-tracker/internal/database"
	"royale-tracker/internal/db"
	"royale-tracker/internal/domain"
	"royale-tracker/internal/metrics"
	"royale-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// fakeSource replaces the upstream battle API. Battle logs are keyed by
// player tag; rateLimitNext forces that many 429 responses before the log
// is served.
type fakeSource struct {
	mu            sync.Mutex
	battles       map[string][]api.Battle
	logErr        map[string]error
	infoErr       map[string]error
	rateLimitNext map[string]int
	calls         map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		battles:       make(map[string][]api.Battle),
		logErr:        make(map[string]error),
		infoErr:       make(map[string]error),
		rateLimitNext: make(map[string]int),
		calls:         make(map[string]int),
	}
}

func (f *fakeSource) GetPlayerInfo(ctx context.Context, tag string) (*api.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.infoErr[tag]; err != nil {
		return nil, err
	}
	return &api.Player{Tag: tag, Name: "player " + tag}, nil
}

func (f *fakeSource) GetPlayerBattleLog(ctx context.Context, tag string) ([]api.Battle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[tag]++
	if f.rateLimitNext[tag] > 0 {
		f.rateLimitNext[tag]--
		return nil, &api.Error{StatusCode: 429, Body: "rate limit exceeded"}
	}
	if err := f.logErr[tag]; err != nil {
		return nil, err
	}
	return f.battles[tag], nil
}

func (f *fakeSource) callCount(tag string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[tag]
}

type testEnv struct {
	cfg      *config.Config
	source   *fakeSource
	accounts *repository.AccountRepository
	friends  *repository.FriendRepository
	battles  *repository.BattleRepository
	ratings  *repository.RatingRepository
	sync     *SyncService
	fleet    *FleetService
	friendsS *FriendService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()

	cfg := &config.Config{
		DBPath:     filepath.Join(t.TempDir(), "test.db"),
		EloKFactor: constants.DefaultKFactor,
		AllowedBattleTypes: map[string]struct{}{
			"pvp": {}, "casual_1v1": {}, "path_of_legend": {},
			"trail": {}, "friendly": {}, "clanmate": {},
		},
		RetentionKeepCount:  constants.RetentionKeepCount,
		RetentionFetchLimit: constants.RetentionFetchLimit,
		DeleteBatchSize:     constants.DeleteBatchSize,
		SyncBatchSize:       constants.SyncBatchSize,
		AccountPageSize:     constants.AccountPageSize,
		MinBatchInterval:    time.Millisecond,
		RateLimitCooldown:   time.Millisecond,
		FleetDeadline:       time.Minute,
	}

	sqlDB, err := database.New(cfg, log)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	queries := db.New(sqlDB)
	source := newFakeSource()
	m := metrics.New()

	accounts := repository.NewAccountRepository(sqlDB, queries, log)
	friends := repository.NewFriendRepository(sqlDB, queries, log)
	battles := repository.NewBattleRepository(sqlDB, queries, log)
	ratings := repository.NewRatingRepository(sqlDB, queries, log)

	syncSvc := NewSyncService(source, friends, battles, ratings, cfg, m, log)
	fleetSvc := NewFleetService(syncSvc, accounts, cfg, m, log)
	friendSvc := NewFriendService(source, accounts, friends, ratings, log)

	return &testEnv{
		cfg:      cfg,
		source:   source,
		accounts: accounts,
		friends:  friends,
		battles:  battles,
		ratings:  ratings,
		sync:     syncSvc,
		fleet:    fleetSvc,
		friendsS: friendSvc,
	}
}

func (e *testEnv) createAccount(t *testing.T, id, playerTag string) {
	t.Helper()
	now := time.Now()
	err := e.accounts.Insert(context.Background(), &domain.Account{
		ID:        id,
		Email:     id + "@example.com",
		PlayerTag: playerTag,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to create account %s: %v", id, err)
	}
}

func (e *testEnv) trackFriend(t *testing.T, accountID, friendTag string) {
	t.Helper()
	_, err := e.friends.Insert(context.Background(), accountID, friendTag, "friend "+friendTag)
	if err != nil {
		t.Fatalf("failed to track friend %s: %v", friendTag, err)
	}
}

func (e *testEnv) friendRecord(t *testing.T, accountID, friendTag string) *domain.TrackedFriend {
	t.Helper()
	friend, err := e.friends.GetByTag(context.Background(), accountID, friendTag)
	if err != nil {
		t.Fatalf("failed to load friend %s: %v", friendTag, err)
	}
	return friend
}

func (e *testEnv) ratingFor(t *testing.T, accountID string) *domain.RatingState {
	t.Helper()
	rating, err := e.ratings.GetOrCreate(context.Background(), accountID, "")
	if err != nil {
		t.Fatalf("failed to load rating for %s: %v", accountID, err)
	}
	return rating
}

func pvpBattle(at time.Time, myCrowns, oppCrowns int, opponentTag string) api.Battle {
	return api.Battle{
		Type:       "PvP",
		BattleTime: at.UTC().Format(api.BattleTimeLayout),
		Team:       []api.BattleParticipant{{Tag: "#ME", Name: "me", Crowns: myCrowns}},
		Opponent:   []api.BattleParticipant{{Tag: opponentTag, Name: "rival", Crowns: oppCrowns}},
	}
}
