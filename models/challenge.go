// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeState string
type ChallengeDifficulty string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"

	ChallengeDifficultyEasy   ChallengeDifficulty = "easy"
	ChallengeDifficultyMedium ChallengeDifficulty = "medium"
	ChallengeDifficultyHard   ChallengeDifficulty = "hard"
)

type Challenge struct {
	ID          uint32              `gorm:"primarykey"`
	Title       string              `gorm:"size:100;unique;not null"`
	CategoryID  uint32              `gorm:"not null"`
	Category    Category            `gorm:"foreignKey:CategoryID"`
	EventID     uint32              `gorm:"index;not null"`
	Author      string              `gorm:"size:50"`
	Description string              `gorm:"type:text;not null"`
	State       ChallengeState      `gorm:"size:16;not null;default:'hidden'"`
	// Flag 为权威答案，比较时两侧去空白并转小写
	Flag        string              `gorm:"size:255;not null"`
	Difficulty  ChallengeDifficulty `gorm:"size:16;not null;default:'medium'"`
	Points      uint                `gorm:"not null"`
	SolvedCount uint                `gorm:"default:0"`
	Hints       []Hint              `gorm:"foreignKey:ChallengeID"`
	Resources   []Resource          `gorm:"foreignKey:ChallengeID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Challenge) TableName() string {
	return "frostctf_challenge"
}

// Hint 题目提示，按 hint_index 排序；提示内容只通过揭示接口下发
type Hint struct {
	ID          uint64 `gorm:"primarykey"`
	ChallengeID uint32 `gorm:"uniqueIndex:unique_challenge_hint;not null"`
	HintIndex   int    `gorm:"uniqueIndex:unique_challenge_hint;not null"`
	Content     string `gorm:"type:text;not null"`
}

func (Hint) TableName() string {
	return "frostctf_hint"
}
