// file: models/hint_reveal.go
package models

import (
	"time"
)

// HintReveal 用户已揭示的提示下标；联合唯一索引保证重复揭示不会重复计数
type HintReveal struct {
	ID          uint64    `gorm:"primarykey"`
	UserID      uint32    `gorm:"uniqueIndex:unique_user_hint;not null"`
	ChallengeID uint32    `gorm:"uniqueIndex:unique_user_hint;not null"`
	HintIndex   int       `gorm:"uniqueIndex:unique_user_hint;not null"`
	RevealedAt  time.Time `gorm:"autoCreateTime"`
}

func (HintReveal) TableName() string {
	return "frostctf_hint_reveal"
}
