package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"royale-tracker/internal/db"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// ErrDuplicateBattle is returned when the (account, battle_time, battle_type)
// unique index rejects an insert. The existence check before inserting is an
// optimization only; this constraint is the source of truth under concurrent
// writers.
var ErrDuplicateBattle = errors.New("battle already recorded")

type BattleRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewBattleRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *BattleRepository {
	return &BattleRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *BattleRepository) Exists(ctx context.Context, accountID string, battleTime time.Time, battleType string) (bool, error) {
	count, err := r.queries.CountBattle(ctx, db.CountBattleParams{
		AccountID:  accountID,
		BattleTime: battleTime,
		BattleType: battleType,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForAccounts reports whether any of the given accounts already
// recorded this battle. Used to avoid double-applying counters and rating
// deltas when several accounts share one player tag.
func (r *BattleRepository) ExistsForAccounts(ctx context.Context, accountIDs []string, battleTime time.Time, battleType string) (bool, error) {
	if len(accountIDs) == 0 {
		return false, nil
	}
	count, err := r.queries.CountBattleForAccounts(ctx, db.CountBattleForAccountsParams{
		BattleTime: battleTime,
		BattleType: battleType,
		AccountIds: accountIDs,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BattleRepository) Insert(ctx context.Context, accountID string, battleTime time.Time, battleType, opponentTag, result string) error {
	id, err := gonanoid.New()
	if err != nil {
		return err
	}

	err = r.queries.InsertBattle(ctx, db.InsertBattleParams{
		ID:          id,
		AccountID:   accountID,
		BattleTime:  battleTime,
		BattleType:  battleType,
		OpponentTag: opponentTag,
		Result:      result,
		CreatedAt:   time.Now(),
	})
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateBattle
	}
	return err
}

// ListIDsByTimeDesc returns up to limit battle ids, most recent first.
func (r *BattleRepository) ListIDsByTimeDesc(ctx context.Context, accountID string, limit int) ([]string, error) {
	return r.queries.ListBattleIDs(ctx, db.ListBattleIDsParams{
		AccountID: accountID,
		Limit:     int64(limit),
	})
}

func (r *BattleRepository) DeleteByIDs(ctx context.Context, accountID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.queries.DeleteBattles(ctx, db.DeleteBattlesParams{
		AccountID: accountID,
		Ids:       ids,
	})
}
