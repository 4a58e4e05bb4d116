package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"royale-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	RoyaleAPIKey     string
	RoyaleAPIBaseURL string
	DBPath           string
	ServerPort       string
	LogLevel         string

	// static bearer token for the account-facing API and the secret the
	// scheduler presents on the fleet endpoint
	APIToken   string
	CronSecret string

	EloKFactor         float64
	AllowedBattleTypes map[string]struct{}

	RetentionKeepCount  int
	RetentionFetchLimit int
	DeleteBatchSize     int

	SyncBatchSize     int
	AccountPageSize   int
	MinBatchInterval  time.Duration
	RateLimitCooldown time.Duration
	FleetDeadline     time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RoyaleAPIKey:     getEnv("ROYALE_API_KEY", ""),
		RoyaleAPIBaseURL: getEnv("ROYALE_API_BASE_URL", "https://proxy.royaleapi.dev/v1"),
		DBPath:           getEnv("DB_PATH", "royale.db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		APIToken:         getEnv("API_TOKEN", ""),
		CronSecret:       getEnv("CRON_SECRET", ""),

		EloKFactor:         getEnvFloat("ELO_K_FACTOR", constants.DefaultKFactor),
		AllowedBattleTypes: parseBattleTypes(getEnv("BATTLE_TYPES_1V1", constants.DefaultBattleTypes)),

		RetentionKeepCount:  getEnvInt("RETENTION_KEEP_COUNT", constants.RetentionKeepCount),
		RetentionFetchLimit: getEnvInt("RETENTION_FETCH_LIMIT", constants.RetentionFetchLimit),
		DeleteBatchSize:     getEnvInt("DELETE_BATCH_SIZE", constants.DeleteBatchSize),

		SyncBatchSize:     getEnvInt("SYNC_BATCH_SIZE", constants.SyncBatchSize),
		AccountPageSize:   getEnvInt("ACCOUNT_PAGE_SIZE", constants.AccountPageSize),
		MinBatchInterval:  getEnvDuration("MIN_BATCH_INTERVAL", constants.MinBatchInterval),
		RateLimitCooldown: getEnvDuration("RATE_LIMIT_COOLDOWN", constants.RateLimitCooldown),
		FleetDeadline:     getEnvDuration("FLEET_DEADLINE", constants.FleetDeadline),
	}

	if cfg.RoyaleAPIKey == "" {
		return nil, fmt.Errorf("ROYALE_API_KEY is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("API_TOKEN is required")
	}
	if cfg.CronSecret == "" {
		return nil, fmt.Errorf("CRON_SECRET is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Float64("elo_k_factor", cfg.EloKFactor).
		Int("retention_keep_count", cfg.RetentionKeepCount).
		Int("sync_batch_size", cfg.SyncBatchSize).
		Dur("fleet_deadline", cfg.FleetDeadline).
		Msg("configuration loaded")

	return cfg, nil
}

func parseBattleTypes(raw string) map[string]struct{} {
	types := make(map[string]struct{})
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			types[t] = struct{}{}
		}
	}
	return types
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
