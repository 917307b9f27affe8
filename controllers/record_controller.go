// file: controllers/record_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"FrostCTF/database"
	"FrostCTF/models"
	"FrostCTF/utils"
)

// RecordController 提交审计与解题记录查询
type RecordController struct{}

func NewRecordController() *RecordController {
	return &RecordController{}
}

// GetFlagLogs —— 管理员查询 Flag 提交日志，可按用户/题目/结果筛选
func (rc *RecordController) GetFlagLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB.Table("frostctf_flag_information AS fi").
		Select(`fi.id, fi.submitted_flag, fi.flag_result, fi.submission_time,
			fi.ip_address, fi.suspected,
			u.id AS user_id, u.username,
			ch.id AS challenge_id, ch.title AS challenge_title`).
		Joins("LEFT JOIN frostctf_user u ON fi.user_id = u.id").
		Joins("LEFT JOIN frostctf_challenge ch ON fi.challenge_id = ch.id")

	if username := strings.TrimSpace(c.Query("username")); username != "" {
		db = db.Where("u.username LIKE ?", "%"+username+"%")
	}
	if challengeIDStr := c.Query("challenge_id"); challengeIDStr != "" {
		if cid, err := strconv.Atoi(challengeIDStr); err == nil && cid > 0 {
			db = db.Where("fi.challenge_id = ?", cid)
		}
	}
	if result := strings.TrimSpace(c.Query("result")); result != "" {
		db = db.Where("fi.flag_result = ?", result)
	}
	if c.Query("suspected") == "true" {
		db = db.Where("fi.suspected = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	type flagLogRow struct {
		ID             uint64 `json:"id"`
		UserID         uint32 `json:"user_id"`
		Username       string `json:"username"`
		ChallengeID    uint32 `json:"challenge_id"`
		ChallengeTitle string `json:"challenge_title"`
		SubmittedFlag  string `json:"submitted_flag"`
		FlagResult     string `json:"flag_result"`
		SubmissionTime string `json:"submission_time"`
		IPAddress      string `json:"ip_address"`
		Suspected      bool   `json:"suspected"`
	}
	var rows []flagLogRow
	if err := db.Order("fi.submission_time DESC").Offset(offset).Limit(limit).Scan(&rows).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"logs":  rows,
	})
}

// MarkSuspectSubmission —— 把某条提交记录标记为可疑（或取消标记）
func (rc *RecordController) MarkSuspectSubmission(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Suspected *bool `json:"suspected" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	result := database.DB.Model(&models.SubmissionLog{}).
		Where("id = ?", id).
		UpdateColumn("suspected", *req.Suspected)
	if result.Error != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(c, http.StatusNotFound, 4004, "提交记录不存在")
		return
	}
	utils.Success(c, "Submission marked successfully", nil)
}

// GetUserSolves —— 当前登录用户的解题记录
func (rc *RecordController) GetUserSolves(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	type solveRow struct {
		ChallengeID    uint32 `json:"challenge_id"`
		ChallengeTitle string `json:"challenge_title"`
		Category       string `json:"category"`
		PointsEarned   int    `json:"points_earned"`
		HintsUsed      int    `json:"hints_used"`
		TimeSpent      int    `json:"time_spent"`
		CompletedAt    string `json:"completed_at"`
	}
	var rows []solveRow
	err := database.DB.Table("frostctf_completion AS comp").
		Select(`comp.challenge_id, ch.title AS challenge_title, cat.alias AS category,
			comp.points_earned, comp.hints_used, comp.time_spent, comp.completed_at`).
		Joins("LEFT JOIN frostctf_challenge ch ON comp.challenge_id = ch.id").
		Joins("LEFT JOIN frostctf_category cat ON ch.category_id = cat.id").
		Where("comp.user_id = ?", user.ID).
		Order("comp.completed_at DESC").
		Scan(&rows).Error
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	totalScore := 0
	for _, r := range rows {
		totalScore += r.PointsEarned
	}

	utils.Success(c, "success", gin.H{
		"total_score": totalScore,
		"solved":      len(rows),
		"records":     rows,
	})
}
