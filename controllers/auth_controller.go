// file: controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FrostCTF/dto"
	"FrostCTF/services"
	"FrostCTF/utils"
)

// AuthController 认证相关接口，依赖注入的认证网关
type AuthController struct {
	gate         *services.AuthGate
	cookieSecure bool
}

func NewAuthController(gate *services.AuthGate, cookieSecure bool) *AuthController {
	return &AuthController{gate: gate, cookieSecure: cookieSecure}
}

// setSessionCookie 统一的会话 Cookie 属性：httpOnly + SameSite=Lax，
// 有效期与会话一致
func (ac *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.SessionCookieName, token, maxAge, "/", "", ac.cookieSecure, true)
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	user, token, err := ac.gate.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	ac.setSessionCookie(c, token, int(ac.gate.TTL().Seconds()))
	utils.Success(c, "User registered successfully", gin.H{"user": user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, 1001, "参数无效: "+err.Error())
		return
	}

	user, token, err := ac.gate.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	ac.setSessionCookie(c, token, int(ac.gate.TTL().Seconds()))
	utils.Success(c, "Login success", gin.H{"user": user})
}

// Me 返回当前会话对应的用户；路由上挂了认证中间件，到这里必然已登录
func (ac *AuthController) Me(c *gin.Context) {
	utils.Success(c, "success", gin.H{"user": currentUser(c)})
}

// Logout 删除会话并清掉 Cookie；重复登出不报错
func (ac *AuthController) Logout(c *gin.Context) {
	token, err := c.Cookie(services.SessionCookieName)
	if err == nil && token != "" {
		if err := ac.gate.Logout(c.Request.Context(), token); err != nil {
			fail(c, err)
			return
		}
	}

	ac.setSessionCookie(c, "", -1)
	utils.Success(c, "Logged out", nil)
}
