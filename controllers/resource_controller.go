// file: controllers/resource_controller.go
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

// ResourceController 题目附件管理；只保存外部下载地址，不落文件
type ResourceController struct{}

func NewResourceController() *ResourceController {
	return &ResourceController{}
}

// AddResource —— 管理员给题目挂附件
func (rc *ResourceController) AddResource(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}

	var req struct {
		FileName  string `json:"file_name" binding:"required"`
		URL       string `json:"url" binding:"required,url"`
		SortOrder uint   `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	var createdBy uint32
	if user := currentUser(c); user != nil {
		createdBy = user.ID
	}

	resource := models.Resource{
		ChallengeID: challenge.ID,
		FileName:    strings.TrimSpace(req.FileName),
		URL:         strings.TrimSpace(req.URL),
		SortOrder:   req.SortOrder,
		CreatedBy:   createdBy,
	}
	if err := database.DB.Create(&resource).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "添加附件失败: "+err.Error())
		return
	}
	utils.Success(c, "Resource added successfully", gin.H{"id": resource.ID})
}

// DeleteResource
func (rc *ResourceController) DeleteResource(c *gin.Context) {
	resourceID, _ := strconv.Atoi(c.Param("resourceId"))

	result := database.DB.Delete(&models.Resource{}, resourceID)
	if result.Error != nil {
		utils.Fail(c, http.StatusInternalServerError, 5000, "删除失败: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.Fail(c, http.StatusNotFound, 4004, "附件不存在")
		return
	}
	utils.Success(c, "Resource deleted successfully", nil)
}

// DownloadResource —— 302 跳转到附件地址；隐藏题目的附件不对普通用户开放
func (rc *ResourceController) DownloadResource(c *gin.Context) {
	resourceID, _ := strconv.Atoi(c.Param("resourceId"))

	var resource models.Resource
	if err := database.DB.First(&resource, resourceID).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "附件不存在")
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, resource.ChallengeID).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, 4004, "题目不存在")
		return
	}
	if challenge.State != models.ChallengeStateVisible {
		user := currentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			utils.Fail(c, http.StatusNotFound, 4004, "附件不存在")
			return
		}
	}

	c.Redirect(http.StatusFound, resource.URL)
}
