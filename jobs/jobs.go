// file: jobs/jobs.go
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"FrostCTF/services"
	"FrostCTF/stores"
)

// Start 启动后台定时任务：过期会话清理 + 排行榜缓存预热。
// 返回的 cron 实例由调用方在退出时 Stop。
func Start(sessions stores.SessionStore, leaderboard *services.LeaderboardService, log zerolog.Logger) *cron.Cron {
	c := cron.New()

	// 每小时清一次过期会话。Redis 后端靠 TTL 自动过期，这里清理的是 MySQL 后端
	c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := sessions.DeleteExpired(ctx, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("session sweep failed")
			return
		}
		if n > 0 {
			log.Info().Int64("deleted", n).Msg("expired sessions swept")
		}
	})

	// 每 5 分钟刷一次排行榜缓存，避免缓存过期后第一个请求扛冷查询
	c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		leaderboard.RefreshCache(ctx)
	})

	c.Start()
	log.Info().Msg("background jobs started")
	return c
}
