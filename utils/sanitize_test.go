// file: utils/sanitize_test.go
package utils

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"普通文本原样返回", "alice", "alice"},
		{"裁剪首尾空白", "  alice  ", "alice"},
		{"去掉成对标签", "<b>alice</b>", "alice"},
		{"去掉 script 标签", "<script>alert(1)</script>bob", "alert(1)bob"},
		{"未闭合标签整段删除", "alice<img src=x", "alice"},
		{"全是标签时清空", "<script></script>", ""},
		{"保留标签外内容", "a<i>b</i>c", "abc"},
		{"空串", "", ""},
		{"只有空白", "   \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateInvitationCode(t *testing.T) {
	code := GenerateInvitationCode(12)
	if len(code) != 12 {
		t.Fatalf("len = %d, want 12", len(code))
	}
	for _, ch := range code {
		if !strings.ContainsRune(charset, ch) {
			t.Fatalf("unexpected character %q in code %q", ch, code)
		}
	}

	// 碰撞概率可忽略，连续生成不应重复
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c := GenerateInvitationCode(12)
		if seen[c] {
			t.Fatalf("duplicate code generated: %q", c)
		}
		seen[c] = true
	}
}
