// file: services/errors.go
package services

import (
	"errors"
	"net/http"
)

// BizError 业务错误，携带 HTTP 状态码和业务错误码，
// 控制器直接用它渲染响应；除存储故障外都是可预期结果
type BizError struct {
	HTTPStatus int
	Code       int
	Msg        string
}

func (e *BizError) Error() string {
	return e.Msg
}

var (
	// 参数类
	ErrMissingField = &BizError{http.StatusBadRequest, 1001, "用户名和密码不能为空"}
	ErrWeakPassword = &BizError{http.StatusBadRequest, 1003, "密码长度不能少于 6 位"}
	ErrEmptyFlag    = &BizError{http.StatusBadRequest, 1004, "请输入 Flag"}

	// 认证类。用户不存在和密码错误共用同一条消息，避免用户名枚举
	ErrInvalidCredentials = &BizError{http.StatusUnauthorized, 2002, "用户不存在或密码错误"}
	ErrUserBanned         = &BizError{http.StatusForbidden, 2005, "用户已被封禁"}
	ErrUsernameTaken      = &BizError{http.StatusConflict, 2001, "用户名已被注册"}

	// 资源类
	ErrChallengeNotFound = &BizError{http.StatusNotFound, 4004, "题目不存在"}
	ErrHintNotFound      = &BizError{http.StatusNotFound, 4005, "提示不存在"}

	// 存储故障是唯一按内部错误处理的类别
	ErrStorage = &BizError{http.StatusInternalServerError, 5000, "数据库错误"}
)

// AsBizError 从任意 error 中提取业务错误；提取不到则视为存储故障
func AsBizError(err error) *BizError {
	var be *BizError
	if errors.As(err, &be) {
		return be
	}
	return ErrStorage
}
