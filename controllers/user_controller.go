// file: controllers/user_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"FrostCTF/database"
	"FrostCTF/dto"
	"FrostCTF/models"
	"FrostCTF/utils"
)

// UserController 管理员侧的用户管理接口
type UserController struct{}

func NewUserController() *UserController {
	return &UserController{}
}

// ListUsers —— 管理员查询用户列表，支持按用户名模糊搜索+分页
func (uc *UserController) ListUsers(c *gin.Context) {
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

	db := database.DB.Model(&models.User{})
	if kw != "" {
		db = db.Where("username LIKE ?", "%"+kw+"%")
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		db = db.Where("role = ?", role)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	var users []models.User
	if err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "查询失败: "+err.Error())
		return
	}

	type userItem struct {
		ID        uint32 `json:"id"`
		Username  string `json:"username"`
		Role      string `json:"role"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
	}
	items := make([]userItem, 0, len(users))
	for _, u := range users {
		items = append(items, userItem{
			ID:        u.ID,
			Username:  u.Username,
			Role:      string(u.Role),
			Status:    string(u.Status),
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"users": items,
	})
}

// UpdateUserRole —— 调整用户角色；不允许把自己降级，避免失去最后一个管理员
func (uc *UserController) UpdateUserRole(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateUserRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	operator := currentUser(c)
	if operator != nil && operator.ID == uint32(id) && req.Role != string(models.RoleAdmin) {
		utils.Fail(c, http.StatusBadRequest, 1005, "不能修改自己的管理员角色")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "用户不存在")
		return
	}

	if err := database.DB.Model(&user).UpdateColumn("role", req.Role).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "User role updated successfully", nil)
}

// UpdateUserStatus —— 封禁或解封；封禁后该用户的会话在下次鉴权时会被拒绝
func (uc *UserController) UpdateUserStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateUserStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	operator := currentUser(c)
	if operator != nil && operator.ID == uint32(id) {
		utils.Fail(c, http.StatusBadRequest, 1005, "不能封禁自己")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "用户不存在")
		return
	}

	if err := database.DB.Model(&user).UpdateColumn("status", req.Status).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "User status updated successfully", nil)
}

// DeleteUser —— 删除用户及其会话、解题和提交记录；管理员账号不允许删除
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "用户不存在")
		return
	}
	if user.Role == models.RoleAdmin {
		utils.Fail(c, http.StatusForbidden, 4003, "不能删除管理员账号")
		return
	}

	database.DB.Where("user_id = ?", user.ID).Delete(&models.Session{})
	database.DB.Where("user_id = ?", user.ID).Delete(&models.Completion{})
	database.DB.Where("user_id = ?", user.ID).Delete(&models.HintReveal{})
	database.DB.Where("user_id = ?", user.ID).Delete(&models.TeamMember{})
	if err := database.DB.Delete(&user).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+err.Error())
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}
