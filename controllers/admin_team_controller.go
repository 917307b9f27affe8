// file: controllers/admin_team_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"FrostCTF/database"
	"FrostCTF/models"
	"FrostCTF/utils"
)

// AdminTeamController 管理员侧的战队管理
type AdminTeamController struct{}

func NewAdminTeamController() *AdminTeamController {
	return &AdminTeamController{}
}

// AdminGetTeams —— 分页查询战队，带队长和成员数
func (atc *AdminTeamController) AdminGetTeams(c *gin.Context) {
	kw := strings.TrimSpace(c.Query("keyword"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Team{}).Preload("Leader")
	if kw != "" {
		db = db.Where("team_name LIKE ?", "%"+kw+"%")
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("team_status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	var teams []models.Team
	if err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&teams).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	type teamItem struct {
		ID          uint32 `json:"id"`
		TeamName    string `json:"team_name"`
		Leader      string `json:"leader"`
		TeamStatus  string `json:"team_status"`
		MemberCount int64  `json:"member_count"`
		CreatedAt   string `json:"created_at"`
	}
	items := make([]teamItem, 0, len(teams))
	for _, t := range teams {
		var memberCount int64
		database.DB.Model(&models.TeamMember{}).Where("team_id = ?", t.ID).Count(&memberCount)
		items = append(items, teamItem{
			ID:          t.ID,
			TeamName:    t.TeamName,
			Leader:      t.Leader.Username,
			TeamStatus:  string(t.TeamStatus),
			MemberCount: memberCount,
			CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"teams": items,
	})
}

// AdminUpdateTeamStatus —— 封禁/隐藏/恢复战队
func (atc *AdminTeamController) AdminUpdateTeamStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required,oneof=active banned hidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	result := database.DB.Model(&models.Team{}).Where("id = ?", id).
		UpdateColumn("team_status", req.Status)
	if result.Error != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(c, http.StatusNotFound, 4004, "队伍不存在")
		return
	}
	utils.Success(c, "Team status updated successfully", nil)
}

// AdminDeleteTeam —— 管理员强制解散战队
func (atc *AdminTeamController) AdminDeleteTeam(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var team models.Team
	if err := database.DB.First(&team, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "队伍不存在")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+err.Error())
		return
	}
	utils.Success(c, "Team deleted successfully", nil)
}
