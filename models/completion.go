// file: models/completion.go
package models

import (
	"time"
)

// Completion 解题记录，唯一索引保证同一用户对同一题至多记分一次
type Completion struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	ChallengeID  uint32    `gorm:"uniqueIndex:unique_user_challenge;not null" json:"challenge_id"`
	UserID       uint32    `gorm:"uniqueIndex:unique_user_challenge;not null" json:"user_id"`
	EventID      uint32    `gorm:"index;not null" json:"event_id"`
	TimeSpent    int       `gorm:"default:0" json:"time_spent"`
	HintsUsed    int       `gorm:"default:0" json:"hints_used"`
	PointsEarned int       `gorm:"not null" json:"points_earned"`
	CompletedAt  time.Time `json:"completed_at"`
}

func (Completion) TableName() string {
	return "frostctf_completion"
}
