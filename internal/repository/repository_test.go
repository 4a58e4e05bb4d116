package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
	"royale-tracker/internal/config"
	"royale-tracker/internal/database"
	"royale-tracker/internal/db"
	"royale-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type repos struct {
	accounts *AccountRepository
	friends  *FriendRepository
	battles  *BattleRepository
	ratings  *RatingRepository
}

func newTestRepos(t *testing.T) *repos {
	t.Helper()
	log := zerolog.Nop()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}

	sqlDB, err := database.New(cfg, log)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	queries := db.New(sqlDB)
	return &repos{
		accounts: NewAccountRepository(sqlDB, queries, log),
		friends:  NewFriendRepository(sqlDB, queries, log),
		battles:  NewBattleRepository(sqlDB, queries, log),
		ratings:  NewRatingRepository(sqlDB, queries, log),
	}
}

func (r *repos) createAccount(t *testing.T, id, playerTag string) {
	t.Helper()
	now := time.Now()
	err := r.accounts.Insert(context.Background(), &domain.Account{
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

// sanity check on the sql.ErrNoRows contract the services rely on
func TestAccountGet_NotFound(t *testing.T) {
	r := newTestRepos(t)
	_, err := r.accounts.Get(context.Background(), "missing")
	if err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}
