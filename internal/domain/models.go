package domain

import (
	"time"
)

const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

type Account struct {
	ID        string
	Email     string
	PlayerTag string // empty when the account never linked a game profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TrackedFriend struct {
	ID         string `json:"id"`
	AccountID  string `json:"accountId"`
	FriendTag  string `json:"friendTag"`
	FriendName string `json:"friendName"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BattleRecord is append-only. (account_id, battle_time, battle_type) is the
// idempotency key; rows are removed only by retention trimming.
type BattleRecord struct {
	ID          string
	AccountID   string
	BattleTime  time.Time
	BattleType  string
	OpponentTag string
	Result      string
	CreatedAt   time.Time
}

// RatingState is per-account. The rating value is kept in agreement across
// all accounts sharing a player tag; GamesPlayed is never shared.
type RatingState struct {
	AccountID   string
	PlayerTag   string
	EloRating   int
	GamesPlayed int
	LastUpdated time.Time // zero when the account has no rated battle yet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SyncOutcome summarizes one account's sync attempt. Never persisted.
type SyncOutcome struct {
	BattlesProcessed int      `json:"battlesProcessed"`
	RecordsUpdated   int      `json:"recordsUpdated"`
	NewBattles       int      `json:"newBattles"`
	DeletedBattles   int      `json:"deletedBattles"`
	Errors           []string `json:"errors"`
}

func NewSyncOutcome() *SyncOutcome {
	return &SyncOutcome{Errors: []string{}}
}

type AccountSyncResult struct {
	AccountID string       `json:"accountId"`
	PlayerTag string       `json:"playerTag"`
	Success   bool         `json:"success"`
	Outcome   *SyncOutcome `json:"result"`
	Error     string       `json:"error"`
}

type FleetResult struct {
	TotalAccounts     int                 `json:"totalAccounts"`
	AccountsWithTag   int                 `json:"accountsWithTag"`
	AccountsProcessed int                 `json:"accountsProcessed"`
	Succeeded         int                 `json:"succeeded"`
	Failed            int                 `json:"failed"`
	Results           []AccountSyncResult `json:"results"`
	Errors            []string            `json:"errors"`
}
