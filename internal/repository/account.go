package repository

import (
	"context"
	"database/sql"
	"royale-tracker/internal/db"
	"royale-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type AccountRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewAccountRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *AccountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := r.queries.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainAccount(account), nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountAccounts(ctx)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListWithPlayerTag returns one page of accounts that have a linkable player
// tag. Callers must keep paging until a short page comes back.
func (r *AccountRepository) ListWithPlayerTag(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	accounts, err := r.queries.ListAccountsWithPlayerTag(ctx, db.ListAccountsWithPlayerTagParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Account, len(accounts))
	for i, a := range accounts {
		result[i] = *toDomainAccount(a)
	}
	return result, nil
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	return r.queries.InsertAccount(ctx, db.InsertAccountParams{
		ID:        account.ID,
		Email:     account.Email,
		PlayerTag: account.PlayerTag,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	})
}

func toDomainAccount(a db.Account) *domain.Account {
	return &domain.Account{
		ID:        a.ID,
		Email:     a.Email,
		PlayerTag: a.PlayerTag,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
