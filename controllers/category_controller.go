// file: controllers/category_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"FrostCTF/database"
	"FrostCTF/models"
	"FrostCTF/utils"
)

// CategoryController 题目分类管理
type CategoryController struct{}

func NewCategoryController() *CategoryController {
	return &CategoryController{}
}

type categoryReq struct {
	Name        string `json:"name" binding:"required"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
}

// ListCategories —— 所有用户可见，附带每个分类下可见题目数
func (cc *CategoryController) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("id ASC").Find(&categories).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败")
		return
	}

	type categoryItem struct {
		ID             uint32 `json:"id"`
		Name           string `json:"name"`
		Alias          string `json:"alias,omitempty"`
		Description    string `json:"description,omitempty"`
		ChallengeCount int64  `json:"challenge_count"`
	}
	items := make([]categoryItem, 0, len(categories))
	for _, cat := range categories {
		var count int64
		database.DB.Model(&models.Challenge{}).
			Where("category_id = ? AND state = ?", cat.ID, models.ChallengeStateVisible).
			Count(&count)
		items = append(items, categoryItem{
			ID:             cat.ID,
			Name:           cat.Name,
			Alias:          cat.Alias,
			Description:    cat.Description,
			ChallengeCount: count,
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"categories": items,
	})
}

// GetCategoryDetail —— 单个分类及其可见题目列表
func (cc *CategoryController) GetCategoryDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "分类不存在")
		return
	}

	var challenges []models.Challenge
	database.DB.Select("id, title, difficulty, points, solved_count").
		Where("category_id = ? AND state = ?", category.ID, models.ChallengeStateVisible).
		Find(&challenges)

	type challengeBrief struct {
		ID          uint32 `json:"id"`
		Title       string `json:"title"`
		Difficulty  string `json:"difficulty"`
		Points      uint   `json:"points"`
		SolvedCount uint   `json:"solved_count"`
	}
	briefs := make([]challengeBrief, 0, len(challenges))
	for _, ch := range challenges {
		briefs = append(briefs, challengeBrief{
			ID:          ch.ID,
			Title:       ch.Title,
			Difficulty:  string(ch.Difficulty),
			Points:      ch.Points,
			SolvedCount: ch.SolvedCount,
		})
	}

	utils.Success(c, "success", gin.H{
		"category":   category,
		"challenges": briefs,
	})
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Alias:       strings.TrimSpace(req.Alias),
		Description: req.Description,
	}
	if category.Alias == "" {
		category.Alias = category.Name
	}

	if err := database.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(c, http.StatusConflict, 2001, "分类名称已存在")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, 5000, "创建分类失败: "+err.Error())
		return
	}
	utils.Success(c, "Category created successfully", gin.H{"id": category.ID})
}

// UpdateCategory
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "分类不存在")
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	if alias := strings.TrimSpace(req.Alias); alias != "" {
		category.Alias = alias
	}
	category.Description = req.Description

	if err := database.DB.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(c, http.StatusConflict, 2001, "分类名称已存在")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "Category updated successfully", nil)
}

// DeleteCategory —— 分类下还有题目时不允许删除
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "分类不存在")
		return
	}

	var count int64
	database.DB.Model(&models.Challenge{}).Where("category_id = ?", category.ID).Count(&count)
	if count > 0 {
		utils.Fail(c, http.StatusBadRequest, 1006, "分类下仍有题目，无法删除")
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+err.Error())
		return
	}
	utils.Success(c, "Category deleted successfully", nil)
}
