// file: services/leaderboard_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// 排行榜缓存有效期设置为较短的 15 秒，保证准实时性
const leaderboardCacheTTL = 15 * time.Second

const defaultStandingsLimit = 10

// LeaderboardEntry 排行榜单行，按总分降序、最后解题时间升序排名
type LeaderboardEntry struct {
	Rank          uint   `json:"rank"`
	UserID        uint32 `json:"user_id"`
	Username      string `json:"username"`
	Score         int    `json:"score"`
	SolvedCount   int    `json:"solved_count"`
	LastSolveTime string `json:"last_solve_time"`
}

// SolveFeedEntry 实时解题动态单行
type SolveFeedEntry struct {
	UserID         uint32 `json:"user_id"`
	Username       string `json:"username"`
	ChallengeID    uint32 `json:"challenge_id"`
	ChallengeTitle string `json:"challenge_title"`
	PointsEarned   int    `json:"points_earned"`
	CompletedAt    string `json:"completed_at"`
}

// LeaderboardService 按用户聚合解题记录并用 Redis 缓存结果
type LeaderboardService struct {
	db  *gorm.DB
	rdb *redis.Client
	log zerolog.Logger
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{db: db, rdb: rdb, log: log}
}

// Standings 查询排行榜；eventID 为 0 表示总榜
func (s *LeaderboardService) Standings(ctx context.Context, eventID uint32, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultStandingsLimit
	}

	// 1. 先查缓存
	cacheKey := fmt.Sprintf("leaderboard:event:%d:%d", eventID, limit)
	if eventID == 0 {
		cacheKey = fmt.Sprintf("leaderboard:overall:%d", limit)
	}
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	db := s.db.WithContext(ctx).Table("frostctf_completion c").
		Select("u.id as user_id, u.username, SUM(c.points_earned) as score, COUNT(c.id) as solved_count, MAX(c.completed_at) as last_solve_time").
		Joins("JOIN frostctf_user u ON c.user_id = u.id").
		Group("u.id, u.username").
		Order("score desc, last_solve_time asc").
		Limit(limit)
	if eventID != 0 {
		db = db.Where("c.event_id = ?", eventID)
	}

	var entries []LeaderboardEntry
	if err := db.Scan(&entries).Error; err != nil {
		s.log.Error().Err(err).Msg("leaderboard: aggregate query failed")
		return nil, ErrStorage
	}

	for i := range entries {
		entries[i].Rank = uint(i + 1)
	}

	// 2. 缓存未命中，把查询结果写回 Redis
	if s.rdb != nil {
		if jsonData, err := json.Marshal(entries); err == nil {
			s.rdb.Set(ctx, cacheKey, jsonData, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

// RecentSolves 最近的解题动态，按完成时间倒序
func (s *LeaderboardService) RecentSolves(ctx context.Context, limit int) ([]SolveFeedEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var feed []SolveFeedEntry
	err := s.db.WithContext(ctx).Table("frostctf_completion c").
		Select("c.user_id, u.username, c.challenge_id, ch.title as challenge_title, c.points_earned, c.completed_at").
		Joins("JOIN frostctf_user u ON c.user_id = u.id").
		Joins("JOIN frostctf_challenge ch ON c.challenge_id = ch.id").
		Order("c.completed_at desc").
		Limit(limit).
		Scan(&feed).Error
	if err != nil {
		s.log.Error().Err(err).Msg("leaderboard: solve feed query failed")
		return nil, ErrStorage
	}
	return feed, nil
}

// InvalidateCache 新解题产生后清空全部排行榜缓存，下次查询回源
func (s *LeaderboardService) InvalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	keys, err := s.rdb.Keys(ctx, "leaderboard:*").Result()
	if err == nil && len(keys) > 0 {
		s.rdb.Del(ctx, keys...)
	}
}

// RefreshCache 定时任务入口：重建总榜缓存
func (s *LeaderboardService) RefreshCache(ctx context.Context) {
	s.InvalidateCache(ctx)
	if _, err := s.Standings(ctx, 0, defaultStandingsLimit); err != nil {
		s.log.Warn().Err(err).Msg("leaderboard: cache refresh failed")
	}
}
