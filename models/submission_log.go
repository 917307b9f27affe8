// file: models/submission_log.go
package models

import (
	"time"
)

type FlagResult string

const (
	FlagResultCorrect   FlagResult = "correct"
	FlagResultWrong     FlagResult = "wrong"
	FlagResultDuplicate FlagResult = "duplicate"
)

// SubmissionLog Flag 提交审计日志，记录每一次提交的原文与判定结果
type SubmissionLog struct {
	ID             uint64     `gorm:"primarykey"`
	ChallengeID    uint32     `gorm:"index;not null"`
	UserID         uint32     `gorm:"index;not null"`
	SubmittedFlag  string     `gorm:"size:255;not null"`
	FlagResult     FlagResult `gorm:"size:16;not null"`
	SubmissionTime time.Time  `gorm:"autoCreateTime"`
	IPAddress      string     `gorm:"size:45"`
	Suspected      bool       `gorm:"default:false"`
}

func (SubmissionLog) TableName() string {
	return "frostctf_flag_information"
}
