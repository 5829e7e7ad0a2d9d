package services

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

// ListQuery 列表查询的归档可见性参数
//
// 默认列表只返回未归档记录；调用方必须显式传include_archived才能看到
// 归档记录。按ID的单条读取不受此限制（归档记录仍可单独寻址）。
type ListQuery struct {
	IncludeArchived bool
}

// applyArchiveVisibility 在查询上应用归档可见性规则
func applyArchiveVisibility(query *gorm.DB, lq ListQuery) *gorm.DB {
	if !lq.IncludeArchived {
		return query.Where("is_archived = ?", false)
	}
	return query
}

// archiveRecord 条件式归档更新
//
// UPDATE以存储中的is_archived=false为前置条件，并发的第二次归档会因
// 条件不满足而得到ErrAlreadyArchived，而不是静默的重复写。
// businessID为0时不加租户过滤（用于商家自身等无租户列的表）。
func archiveRecord(db *gorm.DB, model interface{}, id, businessID, actorID uint, forceInactive bool) error {
	now := time.Now()
	updates := map[string]interface{}{
		"is_archived": true,
		"archived_at": now,
		"archived_by": actorID,
	}
	if forceInactive {
		updates["is_active"] = false
	}

	query := db.Model(model).Where("id = ? AND is_archived = ?", id, false)
	if businessID > 0 {
		query = query.Where("business_id = ?", businessID)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return classifyArchiveMiss(db, model, id, businessID, true)
	}
	return nil
}

// restoreRecord 条件式恢复更新
//
// 仅在is_archived=true时生效。active记录间的唯一性约束须由调用方
// 在本函数之前重新校验（冲突返回ErrConflict并保持归档状态）。
func restoreRecord(db *gorm.DB, model interface{}, id, businessID uint, restoreActive bool) error {
	updates := map[string]interface{}{
		"is_archived": false,
		"archived_at": nil,
		"archived_by": nil,
	}
	if restoreActive {
		updates["is_active"] = true
	}

	query := db.Model(model).Where("id = ? AND is_archived = ?", id, true)
	if businessID > 0 {
		query = query.Where("business_id = ?", businessID)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return classifyArchiveMiss(db, model, id, businessID, false)
	}
	return nil
}

// classifyArchiveMiss 区分条件更新未命中的原因
//
// 记录不存在（含跨租户，两者对调用方不可区分）返回ErrNotFound，
// 否则就是生命周期状态不符。
func classifyArchiveMiss(db *gorm.DB, model interface{}, id, businessID uint, archiving bool) error {
	var count int64
	query := db.Model(model).Where("id = ?", id)
	if businessID > 0 {
		query = query.Where("business_id = ?", businessID)
	}
	query.Count(&count)

	if count == 0 {
		return errors.ErrNotFound
	}
	if archiving {
		return errors.ErrAlreadyArchived
	}
	return errors.ErrNotArchived
}

// checkTenantRef 校验跨实体引用存在且属于指定商家（未归档）
func checkTenantRef(db *gorm.DB, model interface{}, id, businessID uint, missingMsg string) error {
	var count int64
	db.Model(model).
		Where("id = ? AND business_id = ? AND is_archived = ?", id, businessID, false).
		Count(&count)
	if count == 0 {
		return errors.NewValidation(missingMsg)
	}
	return nil
}
