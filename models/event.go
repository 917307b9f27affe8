// file: models/event.go
package models

import (
	"time"
)

// EventStatus 定义赛事状态，按起止时间实时计算
type EventStatus string

// EventType 区分单场赛与系列赛
type EventType string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusOngoing  EventStatus = "ongoing"
	EventStatusEnded    EventStatus = "ended"

	EventTypeSingle EventType = "single"
	EventTypeSeries EventType = "series"
)

type Event struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	Slug        string    `gorm:"size:100;unique;not null" json:"slug"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Subtitle    string    `gorm:"size:255" json:"subtitle,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CoverImage  string    `gorm:"size:255" json:"cover_image,omitempty"`
	EventType   EventType `gorm:"size:16;not null;default:'single'" json:"event_type"`
	HostedBy    string    `gorm:"size:100" json:"hosted_by,omitempty"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "frostctf_event"
}

// StatusAt 根据起止时间计算赛事当前状态
func (e *Event) StatusAt(now time.Time) EventStatus {
	switch {
	case now.Before(e.StartTime):
		return EventStatusUpcoming
	case now.After(e.EndTime):
		return EventStatusEnded
	default:
		return EventStatusOngoing
	}
}
