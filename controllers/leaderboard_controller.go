// file: controllers/leaderboard_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"FrostCTF/services"
	"FrostCTF/utils"
)

// LeaderboardController 排行榜与最近解题动态
type LeaderboardController struct {
	svc *services.LeaderboardService
}

func NewLeaderboardController(svc *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{svc: svc}
}

// GetLeaderboard —— 总榜或指定赛事的榜单，limit 默认 10
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	eventID, _ := strconv.Atoi(c.DefaultQuery("event_id", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := lc.svc.Standings(c.Request.Context(), uint32(eventID), limit)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"event_id": eventID,
		"total":    len(entries),
		"rankings": entries,
	})
}

// GetSolveFeed —— 最近解题动态
func (lc *LeaderboardController) GetSolveFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	feed, err := lc.svc.RecentSolves(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"total":  len(feed),
		"solves": feed,
	})
}
