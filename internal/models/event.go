package models

import "time"

// Event 活动模型（场地预订）
type Event struct {
	BaseModel
	BusinessID uint      `json:"business_id" gorm:"not null;index:idx_events_business_archived"`
	VenueID    *uint     `json:"venue_id" gorm:"index"`
	PartnerID  *uint     `json:"partner_id" gorm:"index"`
	Title      string    `json:"title" gorm:"not null;size:150"`
	StartTime  time.Time `json:"start_time" gorm:"not null;index"`
	EndTime    time.Time `json:"end_time" gorm:"not null"`
	Status     string    `json:"status" gorm:"size:20;default:'draft'"`
	GuestCount int       `json:"guest_count" gorm:"default:0"`
	Notes      string    `json:"notes" gorm:"size:500"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Venue    *Venue    `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	Partner  *Partner  `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
}

// 活动状态常量
const (
	EventStatusDraft      = "draft"
	EventStatusConfirmed  = "confirmed"
	EventStatusInProgress = "in_progress"
	EventStatusCompleted  = "completed"
	EventStatusCancelled  = "cancelled"
)

// EventTerminalStatuses 终态：处于终态的活动不再阻塞关联伙伴的归档
var EventTerminalStatuses = []string{EventStatusCompleted, EventStatusCancelled}

// IsValidEventStatus 检查活动状态是否有效
func IsValidEventStatus(status string) bool {
	switch status {
	case EventStatusDraft, EventStatusConfirmed, EventStatusInProgress,
		EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}
