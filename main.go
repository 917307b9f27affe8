// file: main.go
package main

import (
	"context"

	"FrostCTF/config"
	"FrostCTF/database"
	"FrostCTF/jobs"
	"FrostCTF/logger"
	"FrostCTF/routes"
	"FrostCTF/services"
	"FrostCTF/stores"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)

	database.Connect(cfg)
	database.MigrateTables()
	database.InitRedis(cfg)

	// 会话后端按配置选择，默认 Redis
	var sessionStore stores.SessionStore
	if cfg.SessionBackend == "mysql" {
		sessionStore = stores.NewGormSessionStore(database.DB)
	} else {
		sessionStore = stores.NewRedisSessionStore(database.RDB)
	}

	gate := services.NewAuthGate(database.DB, sessionStore, cfg.SessionTTL, log)
	leaderboardSvc := services.NewLeaderboardService(database.DB, database.RDB, log)
	challengeSvc := services.NewChallengeService(database.DB, leaderboardSvc, log)

	// 可选的初始管理员，账号密码来自环境变量
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := gate.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Error().Err(err).Msg("admin bootstrap failed")
		}
	}

	scheduler := jobs.Start(sessionStore, leaderboardSvc, log)
	defer scheduler.Stop()

	r := routes.SetupRouter(cfg, gate, challengeSvc, leaderboardSvc)
	log.Info().Str("addr", cfg.ServerAddr).Msg("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
