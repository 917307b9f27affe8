// file: middlewares/auth.go
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FrostCTF/models"
	"FrostCTF/services"
	"FrostCTF/utils"
)

// SessionAuthMiddleware 验证会话 Cookie，把用户身份写入上下文
func SessionAuthMiddleware(gate *services.AuthGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(services.SessionCookieName)
		if err != nil || token == "" {
			utils.Fail(c, http.StatusUnauthorized, 4001, "未登录")
			c.Abort()
			return
		}

		user, err := gate.Resolve(c.Request.Context(), token)
		if err != nil {
			be := services.AsBizError(err)
			utils.Fail(c, be.HTTPStatus, be.Code, be.Msg)
			c.Abort()
			return
		}
		if user == nil {
			utils.Fail(c, http.StatusUnauthorized, 4002, "会话无效或已过期")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

// SessionTryAuthMiddleware 尝试解析会话，即使失败也继续执行
func SessionTryAuthMiddleware(gate *services.AuthGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(services.SessionCookieName)
		if err != nil || token == "" {
			c.Next() // 没有会话，按匿名访问处理
			return
		}

		user, err := gate.Resolve(c.Request.Context(), token)
		if err == nil && user != nil {
			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("user_role", user.Role)
		}

		c.Next()
	}
}

// RoleAuthMiddleware 验证用户角色权限
func RoleAuthMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get("user_role")
		if !exists {
			utils.Fail(c, http.StatusInternalServerError, 5001, "无法获取用户角色信息")
			c.Abort()
			return
		}

		role := roleAny.(models.UserRole)

		hasPermission := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			utils.Fail(c, http.StatusForbidden, 4003, "权限不足")
			c.Abort()
			return
		}
		c.Next()
	}
}
