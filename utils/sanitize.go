// file: utils/sanitize.go
package utils

import (
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

// Sanitize 去掉输入中形如 HTML 标签的片段并裁剪首尾空白。
// 注册和登录走同一条清洗路径，因此带空白填充的输入总是
// 映射到同一个账号。只是粗粒度的输入清洗，不构成安全边界。
func Sanitize(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}
