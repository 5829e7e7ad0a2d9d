package services

import (
	"encoding/json"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityLogService struct {
	db *gorm.DB
}

func NewActivityLogService() *ActivityLogService {
	return &ActivityLogService{
		db: database.GetDB(),
	}
}

// Record 写入一条审计日志
//
// 尽力而为：失败只记日志，绝不中断或回滚主操作，因此没有返回值。
func (s *ActivityLogService) Record(businessID, actorID uint, action, entityType string, entityID uint, details map[string]interface{}) {
	var detailsJSON datatypes.JSON
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logger.GetLogger().Warnf("审计日志详情序列化失败: action=%s, err=%v", action, err)
		} else {
			detailsJSON = data
		}
	}

	entry := &models.ActivityLog{
		BusinessID: businessID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    detailsJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.GetLogger().Warnf("审计日志写入失败: action=%s, entity=%s/%d, err=%v",
			action, entityType, entityID, err)
	}
}

// GetWithPage 分页查询商家的审计日志
func (s *ActivityLogService) GetWithPage(businessID uint, entityType string, page, pageSize int) ([]*models.ActivityLog, int64, error) {
	var logs []*models.ActivityLog
	var total int64

	query := s.db.Model(&models.ActivityLog{}).Where("business_id = ?", businessID)
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
