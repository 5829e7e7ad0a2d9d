package models

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"
)

// BaseModel 基础模型
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Archivable 归档生命周期公共字段
//
// 归档是面向用户的唯一"删除"方式：记录默认列表不可见但仍可按ID读取。
// 两个状态：active、archived，转换只能via Archive/Restore。
type Archivable struct {
	IsArchived bool       `json:"is_archived" gorm:"default:false;index"`
	ArchivedAt *time.Time `json:"archived_at"`
	ArchivedBy *uint      `json:"archived_by"`
}

// Archive 从active转换到archived
func (a *Archivable) Archive(actorID uint, now time.Time) error {
	if a.IsArchived {
		return errors.ErrAlreadyArchived
	}
	a.IsArchived = true
	a.ArchivedAt = &now
	a.ArchivedBy = &actorID
	return nil
}

// Restore 从archived转换回active
//
// 唯一性约束（仅在active记录间生效的那类）须由调用方在恢复前重新校验。
func (a *Archivable) Restore() error {
	if !a.IsArchived {
		return errors.ErrNotArchived
	}
	a.IsArchived = false
	a.ArchivedAt = nil
	a.ArchivedBy = nil
	return nil
}
