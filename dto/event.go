// file: dto/event.go
package dto

import "time"

type UpsertEventReq struct {
	Slug        string    `json:"slug" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	CoverImage  string    `json:"cover_image"`
	EventType   string    `json:"event_type"` // single / series
	HostedBy    string    `json:"hosted_by"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}
