// file: dto/auth.go
package dto

// 注册与登录共用同一个请求形状；字段校验放在服务层统一处理
type CredentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
