package models

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/datatypes"
)

// Reminder 提醒模型
//
// 状态机：active -> completed / snoozed / cancelled；snoozed到期后
// 由调度器置回active。completed与cancelled为终态。
type Reminder struct {
	BaseModel
	BusinessID   uint           `json:"business_id" gorm:"not null;index:idx_reminders_business_archived"`
	UserID       uint           `json:"user_id" gorm:"not null;index"` // 接收提醒的用户
	Title        string         `json:"title" gorm:"not null;size:150"`
	Description  string         `json:"description" gorm:"size:500"`
	RemindAt     time.Time      `json:"remind_at" gorm:"not null;index"`
	Status       string         `json:"status" gorm:"size:20;default:'active';index"`
	SnoozedUntil *time.Time     `json:"snoozed_until"`
	NotifiedAt   *time.Time     `json:"notified_at"` // 最近一次投递通知的时间
	Metadata     datatypes.JSON `json:"metadata"`    // 关联上下文，如 {"event_id": 12}
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// 提醒状态常量
const (
	ReminderStatusActive    = "active"
	ReminderStatusCompleted = "completed"
	ReminderStatusSnoozed   = "snoozed"
	ReminderStatusCancelled = "cancelled"
)

// Complete 完成提醒
func (r *Reminder) Complete() error {
	if r.Status != ReminderStatusActive && r.Status != ReminderStatusSnoozed {
		return errors.NewValidation("只有进行中或已延后的提醒可以完成")
	}
	r.Status = ReminderStatusCompleted
	r.SnoozedUntil = nil
	return nil
}

// Snooze 延后提醒到指定时间
func (r *Reminder) Snooze(until time.Time) error {
	if r.Status != ReminderStatusActive && r.Status != ReminderStatusSnoozed {
		return errors.NewValidation("只有进行中的提醒可以延后")
	}
	if !until.After(time.Now()) {
		return errors.NewValidation("延后时间必须晚于当前时间")
	}
	r.Status = ReminderStatusSnoozed
	r.SnoozedUntil = &until
	return nil
}

// Cancel 取消提醒
func (r *Reminder) Cancel() error {
	if r.Status == ReminderStatusCompleted || r.Status == ReminderStatusCancelled {
		return errors.NewValidation("提醒已处于终态")
	}
	r.Status = ReminderStatusCancelled
	r.SnoozedUntil = nil
	return nil
}

// IsDue 判断提醒在now是否到期应投递
func (r *Reminder) IsDue(now time.Time) bool {
	switch r.Status {
	case ReminderStatusActive:
		return !r.RemindAt.After(now)
	case ReminderStatusSnoozed:
		return r.SnoozedUntil != nil && !r.SnoozedUntil.After(now)
	default:
		return false
	}
}
