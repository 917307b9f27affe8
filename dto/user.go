// file: dto/user.go
package dto

// UpdateUserRoleReq 管理员调整用户角色
type UpdateUserRoleReq struct {
	Role string `json:"role" binding:"required,oneof=player admin"`
}

// UpdateUserStatusReq 管理员封禁/解封用户
type UpdateUserStatusReq struct {
	Status string `json:"status" binding:"required,oneof=active banned"`
}
