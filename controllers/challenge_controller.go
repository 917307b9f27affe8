// file: controllers/challenge_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"FrostCTF/database"
	"FrostCTF/dto"
	"FrostCTF/mappers"
	"FrostCTF/models"
	"FrostCTF/services"
	"FrostCTF/utils"
)

// ChallengeController 题目相关接口；Flag 判定与提示揭示走注入的引擎
type ChallengeController struct {
	svc *services.ChallengeService
}

func NewChallengeController(svc *services.ChallengeService) *ChallengeController {
	return &ChallengeController{svc: svc}
}

// completedSet 查出某用户已解出的题目 ID 集合；匿名用户返回空集合
func completedSet(userID uint32) map[uint32]bool {
	set := make(map[uint32]bool)
	if userID == 0 {
		return set
	}
	var completions []models.Completion
	database.DB.Select("challenge_id").Where("user_id = ?", userID).Find(&completions)
	for _, comp := range completions {
		set[comp.ChallengeID] = true
	}
	return set
}

// ListChallenges —— 用户可见的题目列表；登录用户额外带已解出标记
func (cc *ChallengeController) ListChallenges(c *gin.Context) {
	db := database.DB.Model(&models.Challenge{}).
		Where("state = ?", models.ChallengeStateVisible).
		Preload("Category")

	if eventIDStr := c.Query("event_id"); eventIDStr != "" {
		if eid, err := strconv.Atoi(eventIDStr); err == nil && eid > 0 {
			db = db.Where("event_id = ?", eid)
		}
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		db = db.Joins("JOIN frostctf_category cat ON frostctf_challenge.category_id = cat.id").
			Where("cat.name = ?", category)
	}

	var challenges []models.Challenge
	if err := db.Find(&challenges).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败")
		return
	}

	var userID uint32
	if user := currentUser(c); user != nil {
		userID = user.ID
	}
	completed := completedSet(userID)

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapModelToItemResp(ch, completed[ch.ID]))
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail —— 用户可见的题目详情；Flag 和提示内容不随详情下发
func (cc *ChallengeController) GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	err := database.DB.Preload("Category").Preload("Hints").Preload("Resources").
		First(&challenge, id).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}
	if challenge.State != models.ChallengeStateVisible {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}

	completed := false
	if user := currentUser(c); user != nil {
		var count int64
		database.DB.Model(&models.Completion{}).
			Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
			Count(&count)
		completed = count > 0
	}

	utils.Success(c, "success", mappers.MapModelToDetailResp(challenge, completed))
}

// SubmitFlag —— 提交 Flag；判重、比对、计分都在服务层事务里完成
func (cc *ChallengeController) SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	result, err := cc.svc.SubmitFlag(c.Request.Context(), user.ID, uint32(challengeID), req.Flag, req.TimeSpent, c.ClientIP())
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, result.Message, result)
}

// OpenHint —— 揭示指定下标的提示
func (cc *ChallengeController) OpenHint(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))
	hintIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil || hintIndex < 0 {
		utils.Fail(c, http.StatusBadRequest, 1002, "无效的提示下标")
		return
	}

	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	content, err := cc.svc.OpenHint(c.Request.Context(), user.ID, uint32(challengeID), hintIndex)
	if err != nil {
		fail(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"hint_index": hintIndex,
		"content":    content,
	})
}

// ListRevealedHints —— 当前用户在此题上已揭示的提示
func (cc *ChallengeController) ListRevealedHints(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	hints, err := cc.svc.RevealedHints(c.Request.Context(), user.ID, uint32(challengeID))
	if err != nil {
		fail(c, err)
		return
	}

	type revealedHint struct {
		HintIndex int    `json:"hint_index"`
		Content   string `json:"content"`
	}
	items := make([]revealedHint, 0, len(hints))
	for _, h := range hints {
		items = append(items, revealedHint{HintIndex: h.HintIndex, Content: h.Content})
	}

	utils.Success(c, "success", gin.H{
		"total": len(items),
		"hints": items,
	})
}

// --- 仅管理员可访问的接口 ---

// CreateChallenge —— 使用 DTO + 手动映射
func (cc *ChallengeController) CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	// 必填校验统一在这里做
	if req.Title == "" || req.CategoryID == 0 || req.EventID == 0 ||
		req.Description == "" || req.Points == 0 {
		utils.Fail(c, http.StatusBadRequest, 1001, "缺少必填字段")
		return
	}
	if req.Flag == "" {
		utils.Fail(c, http.StatusBadRequest, 1002, "题目必须提供 Flag")
		return
	}
	if req.Difficulty != "easy" && req.Difficulty != "medium" && req.Difficulty != "hard" {
		utils.Fail(c, http.StatusBadRequest, 1001, "difficulty 取值无效（easy/medium/hard）")
		return
	}

	// 分类与赛事存在性校验
	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.Fail(c, http.StatusBadRequest, 4001, "题目分类不存在")
		return
	}
	var event models.Event
	if err := database.DB.First(&event, req.EventID).Error; err != nil {
		utils.Fail(c, http.StatusBadRequest, 4002, "赛事不存在")
		return
	}

	chal := mappers.MapCreateReqToModel(req)
	if err := database.DB.Create(&chal).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "创建题目失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": chal.ID})
}

// AdminListChallenges —— 管理员查询题目列表（可见/隐藏均可，支持筛选+分页）
func (cc *ChallengeController) AdminListChallenges(c *gin.Context) {
	diff := strings.TrimSpace(c.Query("difficulty")) // easy/medium/hard
	state := strings.TrimSpace(c.Query("state"))     // visible/hidden
	kw := strings.TrimSpace(c.Query("keyword"))      // 模糊匹配 title/description
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Challenge{}).Preload("Category")

	if typeIDStr := c.Query("category_id"); typeIDStr != "" {
		if tid, err := strconv.Atoi(typeIDStr); err == nil && tid > 0 {
			db = db.Where("category_id = ?", tid)
		}
	}
	if diff != "" {
		db = db.Where("difficulty = ?", models.ChallengeDifficulty(diff))
	}
	if state != "" {
		db = db.Where("state = ?", models.ChallengeState(state))
	}
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	var list []models.Challenge
	if err := db.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	items := make([]dto.AdminChallengeItemResp, 0, len(list))
	for _, ch := range list {
		items = append(items, dto.AdminChallengeItemResp{
			ID:          ch.ID,
			Title:       ch.Title,
			Category:    ch.Category.Alias,
			Difficulty:  string(ch.Difficulty),
			State:       string(ch.State),
			Points:      ch.Points,
			SolvedCount: ch.SolvedCount,
			UpdatedAt:   ch.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"challenges": items,
	})
}

// AdminGetChallengeDetail —— 管理员查询题目详情（不受可见性限制，含 Flag 与提示原文）
func (cc *ChallengeController) AdminGetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	err := database.DB.Preload("Category").Preload("Hints").Preload("Resources").
		First(&ch, id).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}

	hints := make([]string, 0, len(ch.Hints))
	for _, h := range ch.Hints {
		hints = append(hints, h.Content)
	}
	mini := make([]dto.ResourceMini, 0, len(ch.Resources))
	for _, r := range ch.Resources {
		mini = append(mini, dto.ResourceMini{ID: r.ID, FileName: r.FileName})
	}

	resp := dto.AdminChallengeDetailResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Category:    ch.Category.Alias,
		EventID:     ch.EventID,
		Author:      ch.Author,
		Description: ch.Description,
		Difficulty:  string(ch.Difficulty),
		State:       string(ch.State),
		Flag:        ch.Flag,
		Points:      ch.Points,
		SolvedCount: ch.SolvedCount,
		Hints:       hints,
		Resources:   mini,
		CreatedAt:   ch.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   ch.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	utils.Success(c, "success", resp)
}

// UpdateChallenge —— 管理员按字段更新题目
func (cc *ChallengeController) UpdateChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := database.DB.First(&ch, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.State != nil {
		if *req.State != "visible" && *req.State != "hidden" {
			utils.Fail(c, http.StatusBadRequest, 1001, "state 取值无效（visible/hidden）")
			return
		}
		updates["state"] = *req.State
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Difficulty != nil {
		d := strings.ToLower(strings.TrimSpace(*req.Difficulty))
		if d != "easy" && d != "medium" && d != "hard" {
			utils.Fail(c, http.StatusBadRequest, 1001, "difficulty 取值无效（easy/medium/hard）")
			return
		}
		updates["difficulty"] = d
	}
	if req.Flag != nil {
		if strings.TrimSpace(*req.Flag) == "" {
			utils.Fail(c, http.StatusBadRequest, 1002, "Flag 不能为空")
			return
		}
		updates["flag"] = strings.TrimSpace(*req.Flag)
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}

	if len(updates) == 0 {
		utils.Success(c, "Nothing to update", nil)
		return
	}

	if err := database.DB.Model(&ch).Updates(updates).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge updated successfully", nil)
}

// DeleteChallenge —— 管理员删除题目及其提示/资源
func (cc *ChallengeController) DeleteChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := database.DB.First(&ch, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}

	database.DB.Where("challenge_id = ?", ch.ID).Delete(&models.Hint{})
	database.DB.Where("challenge_id = ?", ch.ID).Delete(&models.Resource{})
	if err := database.DB.Delete(&ch).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge deleted successfully", nil)
}
