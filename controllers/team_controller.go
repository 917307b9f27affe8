// file: controllers/team_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"FrostCTF/database"
	"FrostCTF/models"
	"FrostCTF/utils"
)

// TeamController 战队相关接口；加队走邀请码，队长可踢人和解散
type TeamController struct{}

func NewTeamController() *TeamController {
	return &TeamController{}
}

// memberOfAnyTeam 查当前用户是否已在某支队伍里
func memberOfAnyTeam(userID uint32) (*models.TeamMember, bool) {
	var member models.TeamMember
	err := database.DB.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, false
	}
	return &member, true
}

type teamMemberResp struct {
	UserID   uint32 `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

func mapTeamMembers(members []models.TeamMember) []teamMemberResp {
	items := make([]teamMemberResp, 0, len(members))
	for _, m := range members {
		items = append(items, teamMemberResp{
			UserID:   m.UserID,
			Username: m.User.Username,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return items
}

// CreateTeam —— 创建战队并自动成为队长；一个用户同时只能在一支队伍里
func (tc *TeamController) CreateTeam(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	var req struct {
		TeamName     string `json:"team_name" binding:"required"`
		TeamDescribe string `json:"team_describe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	if _, exists := memberOfAnyTeam(user.ID); exists {
		utils.Fail(c, http.StatusBadRequest, 3001, "你已加入其它队伍，请先退出")
		return
	}

	team := models.Team{
		TeamName:       strings.TrimSpace(req.TeamName),
		LeaderID:       user.ID,
		InvitationCode: utils.GenerateInvitationCode(12),
		TeamDescribe:   req.TeamDescribe,
		TeamStatus:     models.TeamStatusActive,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID:   team.ID,
			UserID:   user.ID,
			Role:     models.TeamRoleLeader,
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(c, http.StatusConflict, 2001, "队伍名称已存在")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, 5000, "创建队伍失败: "+err.Error())
		return
	}

	utils.Success(c, "Team created successfully", gin.H{
		"id":              team.ID,
		"invitation_code": team.InvitationCode,
	})
}

// JoinTeam —— 凭邀请码加入战队
func (tc *TeamController) JoinTeam(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	var req struct {
		InvitationCode string `json:"invitation_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	if _, exists := memberOfAnyTeam(user.ID); exists {
		utils.Fail(c, http.StatusBadRequest, 3001, "你已加入其它队伍，请先退出")
		return
	}

	var team models.Team
	err := database.DB.Where("invitation_code = ?", strings.TrimSpace(req.InvitationCode)).
		First(&team).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "邀请码无效")
		return
	}
	if team.TeamStatus == models.TeamStatusBanned {
		utils.Fail(c, http.StatusForbidden, 3002, "该队伍已被封禁")
		return
	}

	member := models.TeamMember{
		TeamID:   team.ID,
		UserID:   user.ID,
		Role:     models.TeamRoleMember,
		JoinedAt: time.Now(),
	}
	if err := database.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(c, http.StatusConflict, 2001, "你已在该队伍中")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, 5000, "加入队伍失败: "+err.Error())
		return
	}

	utils.Success(c, "Joined team successfully", gin.H{"team_id": team.ID})
}

// GetMyTeam —— 当前用户所在战队详情；队长能看到邀请码
func (tc *TeamController) GetMyTeam(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	member, exists := memberOfAnyTeam(user.ID)
	if !exists {
		utils.Fail(c, http.StatusNotFound, 4004, "你还没有加入任何队伍")
		return
	}

	var team models.Team
	err := database.DB.Preload("Members.User").First(&team, member.TeamID).Error
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	resp := gin.H{
		"id":            team.ID,
		"team_name":     team.TeamName,
		"leader_id":     team.LeaderID,
		"team_describe": team.TeamDescribe,
		"team_status":   string(team.TeamStatus),
		"members":       mapTeamMembers(team.Members),
	}
	if team.LeaderID == user.ID {
		resp["invitation_code"] = team.InvitationCode
	}
	utils.Success(c, "success", resp)
}

// UpdateTeam —— 队长修改队伍信息，可顺带重置邀请码
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	member, exists := memberOfAnyTeam(user.ID)
	if !exists || member.Role != models.TeamRoleLeader {
		utils.Fail(c, http.StatusForbidden, 4003, "只有队长才能修改队伍信息")
		return
	}

	var req struct {
		TeamName     *string `json:"team_name"`
		TeamDescribe *string `json:"team_describe"`
		ResetCode    bool    `json:"reset_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.TeamName != nil {
		updates["team_name"] = strings.TrimSpace(*req.TeamName)
	}
	if req.TeamDescribe != nil {
		updates["team_describe"] = *req.TeamDescribe
	}
	if req.ResetCode {
		updates["invitation_code"] = utils.GenerateInvitationCode(12)
	}
	if len(updates) == 0 {
		utils.Success(c, "Nothing to update", nil)
		return
	}

	err := database.DB.Model(&models.Team{}).Where("id = ?", member.TeamID).
		Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Fail(c, http.StatusConflict, 2001, "队伍名称已存在")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "Team updated successfully", nil)
}

// LeaveTeam —— 普通成员退出；队长要先转让或解散
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	member, exists := memberOfAnyTeam(user.ID)
	if !exists {
		utils.Fail(c, http.StatusNotFound, 4004, "你还没有加入任何队伍")
		return
	}
	if member.Role == models.TeamRoleLeader {
		utils.Fail(c, http.StatusBadRequest, 3003, "队长不能直接退出，请先解散队伍")
		return
	}

	if err := database.DB.Delete(&models.TeamMember{}, member.ID).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "退出失败: "+err.Error())
		return
	}
	utils.Success(c, "Left team successfully", nil)
}

// KickMember —— 队长踢出指定成员
func (tc *TeamController) KickMember(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}
	targetID, _ := strconv.Atoi(c.Param("userId"))

	member, exists := memberOfAnyTeam(user.ID)
	if !exists || member.Role != models.TeamRoleLeader {
		utils.Fail(c, http.StatusForbidden, 4003, "只有队长才能踢出成员")
		return
	}
	if uint32(targetID) == user.ID {
		utils.Fail(c, http.StatusBadRequest, 3004, "不能踢出自己")
		return
	}

	result := database.DB.Where("team_id = ? AND user_id = ?", member.TeamID, targetID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "操作失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(c, http.StatusNotFound, 4004, "该用户不在你的队伍中")
		return
	}
	utils.Success(c, "Member kicked successfully", nil)
}

// DisbandTeam —— 队长解散队伍，成员关系一并清理
func (tc *TeamController) DisbandTeam(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
		return
	}

	member, exists := memberOfAnyTeam(user.ID)
	if !exists || member.Role != models.TeamRoleLeader {
		utils.Fail(c, http.StatusForbidden, 4003, "只有队长才能解散队伍")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", member.TeamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, member.TeamID).Error
	})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "解散失败: "+err.Error())
		return
	}
	utils.Success(c, "Team disbanded successfully", nil)
}
