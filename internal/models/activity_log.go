package models

import "gorm.io/datatypes"

// ActivityLog 操作审计日志
//
// 审计写入为"尽力而为"：写入失败只记日志，绝不影响主操作。
type ActivityLog struct {
	BaseModel
	BusinessID uint           `json:"business_id" gorm:"not null;index"`
	ActorID    uint           `json:"actor_id" gorm:"not null;index"`
	Action     string         `json:"action" gorm:"size:50;not null"` // 如 "partner.archive"
	EntityType string         `json:"entity_type" gorm:"size:50;not null"`
	EntityID   uint           `json:"entity_id" gorm:"index"`
	Details    datatypes.JSON `json:"details"`
}
