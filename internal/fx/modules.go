package fx

import (
	"database/sql"
	"royale-tracker/internal/api"
	"royale-tracker/internal/config"
	"royale-tracker/internal/database"
	"royale-tracker/internal/db"
	"royale-tracker/internal/logger"
	"royale-tracker/internal/metrics"
	"royale-tracker/internal/repository"
	"royale-tracker/internal/server"
	"royale-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideBattleSource(client *api.RoyaleClient) service.BattleSource {
	return client
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewAccountRepository),
	fx.Provide(repository.NewFriendRepository),
	fx.Provide(repository.NewBattleRepository),
	fx.Provide(repository.NewRatingRepository),
	// api client
	fx.Provide(api.NewRoyaleClient),
	fx.Provide(ProvideBattleSource),
	// svc
	fx.Provide(service.NewSyncService),
	fx.Provide(service.NewFleetService),
	fx.Provide(service.NewFriendService),
	// server
	fx.Provide(server.NewTrackerServer),
)
