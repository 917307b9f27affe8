// file: controllers/common.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"FrostCTF/models"
	"FrostCTF/services"
	"FrostCTF/utils"
)

// fail 把服务层错误渲染为响应；非业务错误一律按存储故障处理
func fail(c *gin.Context, err error) {
	be := services.AsBizError(err)
	utils.Fail(c, be.HTTPStatus, be.Code, be.Msg)
}

// currentUser 从上下文取认证中间件写入的用户；匿名访问返回 nil
func currentUser(c *gin.Context) *models.SafeUser {
	if userAny, exists := c.Get("user"); exists {
		if user, ok := userAny.(*models.SafeUser); ok {
			return user
		}
	}
	return nil
}
