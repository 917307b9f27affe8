// file: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

// Fail 返回业务错误，status 为真实 HTTP 状态码，code 为业务错误码
func Fail(c *gin.Context, status int, code int, msg string) {
	c.JSON(status, Response{Code: code, Msg: msg})
}
