// file: models/resource.go
package models

import (
	"time"
)

// Resource 题目附带的下载资源，统一以外链形式存储
type Resource struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ChallengeID uint32    `gorm:"index;not null" json:"challenge_id"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	URL         string    `gorm:"size:2048;not null" json:"url"`
	SortOrder   uint      `gorm:"default:0" json:"sort_order"`
	CreatedBy   uint32    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Resource) TableName() string {
	return "frostctf_resource"
}
