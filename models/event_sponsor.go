// file: models/event_sponsor.go
package models

// EventSponsor 赛事合作方/赞助商
type EventSponsor struct {
	ID          uint32 `gorm:"primarykey" json:"id,omitempty"`
	EventID     uint32 `gorm:"index;not null" json:"event_id"`
	SponsorName string `gorm:"size:100;not null" json:"sponsor_name"`
	LogoURL     string `gorm:"size:255" json:"logo_url"`
	Link        string `gorm:"size:255" json:"link"`
}

func (EventSponsor) TableName() string {
	return "frostctf_event_sponsors"
}
