package constants

import "time"

const (
	DefaultElo     = 1500
	DefaultKFactor = 32.0

	// rating swings stabilize once an account has this many rated games
	ExperienceGameThreshold = 30
)

// Retention window for persisted battles. Cumulative win/loss counters on
// tracked_friends are independent of retained rows, so trimming is purely a
// storage-cost control.
const (
	RetentionKeepCount  = 50
	RetentionFetchLimit = 200
	DeleteBatchSize     = 100
)

// Fleet sync pacing. The upstream API tolerates short bursts but throttles
// sustained traffic, so batches of 15 accounts start at most once every
// 500ms and no new batch starts after the 4.5 minute budget.
const (
	SyncBatchSize     = 15
	MinBatchInterval  = 500 * time.Millisecond
	RateLimitCooldown = 250 * time.Millisecond
	FleetDeadline     = 270 * time.Second
	AccountPageSize   = 200
)

const DefaultBattleTypes = "pvp,casual_1v1,path_of_legend,trail,friendly,clanmate"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
