// file: models/session.go
package models

import (
	"time"
)

// Session 登录会话，token 即主键；过期后在首次解析时被惰性删除
type Session struct {
	Token        string    `gorm:"primarykey;size:64" json:"token"`
	UserID       uint32    `gorm:"index;not null" json:"user_id"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Session) TableName() string {
	return "frostctf_session"
}

// Expired 判断会话在给定时刻是否已过期
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
