package services

import (
	"encoding/json"
	goerrors "errors"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReminderService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewReminderService() *ReminderService {
	return &ReminderService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建提醒
func (s *ReminderService) Create(businessID, userID uint, title, description string, remindAt time.Time, metadata map[string]interface{}) (*models.Reminder, error) {
	if title == "" {
		return nil, errors.NewValidation("提醒标题不能为空")
	}
	if !remindAt.After(time.Now()) {
		return nil, errors.NewValidation("提醒时间必须晚于当前时间")
	}

	// 接收人必须是同商家的活跃用户
	var count int64
	s.db.Model(&models.User{}).
		Where("id = ? AND business_id = ? AND is_archived = ?", userID, businessID, false).
		Count(&count)
	if count == 0 {
		return nil, errors.NewValidation("接收用户不存在")
	}

	var metadataJSON datatypes.JSON
	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, errors.NewValidation("元数据格式错误")
		}
		metadataJSON = data
	}

	reminder := &models.Reminder{
		BusinessID:  businessID,
		UserID:      userID,
		Title:       title,
		Description: description,
		RemindAt:    remindAt,
		Status:      models.ReminderStatusActive,
		Metadata:    metadataJSON,
	}

	err := s.db.Create(reminder).Error
	return reminder, err
}

// GetByID 根据ID获取提醒（租户内）
func (s *ReminderService) GetByID(businessID, id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.Where("business_id = ?", businessID).First(&reminder, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

// GetWithPage 分页获取提醒列表
func (s *ReminderService) GetWithPage(businessID uint, status string, userID *uint, lq ListQuery, page, pageSize int) ([]*models.Reminder, int64, error) {
	var reminders []*models.Reminder
	var total int64

	query := s.db.Model(&models.Reminder{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("remind_at").Offset(offset).Limit(pageSize).Find(&reminders).Error
	if err != nil {
		return nil, 0, err
	}

	return reminders, total, nil
}

// Update 更新提醒内容
func (s *ReminderService) Update(businessID, id uint, title, description string, remindAt time.Time) (*models.Reminder, error) {
	reminder, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if reminder.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}
	if title == "" {
		return nil, errors.NewValidation("提醒标题不能为空")
	}

	reminder.Title = title
	reminder.Description = description
	if !remindAt.Equal(reminder.RemindAt) {
		// 改期视为新一轮提醒，重新武装投递
		reminder.NotifiedAt = nil
	}
	reminder.RemindAt = remindAt

	err = s.db.Save(reminder).Error
	return reminder, err
}

// ========== 状态操作 ==========

// Complete 完成提醒
func (s *ReminderService) Complete(businessID, id uint) (*models.Reminder, error) {
	return s.transition(businessID, id, func(r *models.Reminder) error {
		return r.Complete()
	})
}

// Snooze 延后提醒
func (s *ReminderService) Snooze(businessID, id uint, until time.Time) (*models.Reminder, error) {
	return s.transition(businessID, id, func(r *models.Reminder) error {
		return r.Snooze(until)
	})
}

// Cancel 取消提醒
func (s *ReminderService) Cancel(businessID, id uint) (*models.Reminder, error) {
	return s.transition(businessID, id, func(r *models.Reminder) error {
		return r.Cancel()
	})
}

func (s *ReminderService) transition(businessID, id uint, fn func(*models.Reminder) error) (*models.Reminder, error) {
	reminder, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if reminder.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}
	if err := fn(reminder); err != nil {
		return nil, err
	}
	if err := s.db.Save(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

// ========== 调度器支撑 ==========

// GetDue 获取到期应投递的提醒（全租户，供调度器扫描）
//
// active分支以notified_at IS NULL为前置条件，已投递的提醒不会在后续
// 扫描中重复入队；snoozed提醒到期视为重新到期，投递后由MarkNotified
// 置回active并记录新的投递时间。
func (s *ReminderService) GetDue(now time.Time, limit int) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	err := s.db.Where("is_archived = ?", false).
		Where(
			s.db.Where("status = ? AND remind_at <= ? AND notified_at IS NULL", models.ReminderStatusActive, now).
				Or("status = ? AND snoozed_until <= ?", models.ReminderStatusSnoozed, now),
		).
		Order("remind_at").
		Limit(limit).
		Find(&reminders).Error
	return reminders, err
}

// MarkNotified 记录投递时间；延后中的提醒置回active
func (s *ReminderService) MarkNotified(id uint, now time.Time) error {
	return s.db.Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"notified_at":   now,
			"status":        models.ReminderStatusActive,
			"snoozed_until": nil,
		}).Error
}

// ========== 归档生命周期 ==========

// Archive 归档提醒
func (s *ReminderService) Archive(businessID, id, actorID uint) (*models.Reminder, error) {
	if err := archiveRecord(s.db, &models.Reminder{}, id, businessID, actorID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "reminder.archive", "reminder", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复提醒
func (s *ReminderService) Restore(businessID, id, actorID uint) (*models.Reminder, error) {
	if err := restoreRecord(s.db, &models.Reminder{}, id, businessID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "reminder.restore", "reminder", id, nil)
	return s.GetByID(businessID, id)
}
