package services

import (
	goerrors "errors"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type EventService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewEventService() *EventService {
	return &EventService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建活动
func (s *EventService) Create(businessID uint, title string, startTime, endTime time.Time, venueID, partnerID *uint, guestCount int, notes string) (*models.Event, error) {
	if err := s.validateTimes(startTime, endTime); err != nil {
		return nil, err
	}

	// 跨租户引用在校验时重新按租户范围查询，缺失一律视为不存在
	if venueID != nil {
		if err := s.checkVenueRef(businessID, *venueID); err != nil {
			return nil, err
		}
	}
	if partnerID != nil {
		if err := s.checkPartnerRef(businessID, *partnerID); err != nil {
			return nil, err
		}
	}

	event := &models.Event{
		BusinessID: businessID,
		VenueID:    venueID,
		PartnerID:  partnerID,
		Title:      title,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     models.EventStatusDraft,
		GuestCount: guestCount,
		Notes:      notes,
	}

	err := s.db.Create(event).Error
	return event, err
}

// GetByID 根据ID获取活动（租户内）
func (s *EventService) GetByID(businessID, id uint) (*models.Event, error) {
	var event models.Event
	err := s.db.Where("business_id = ?", businessID).
		Preload("Venue").Preload("Partner").
		First(&event, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetWithPage 分页获取活动列表
func (s *EventService) GetWithPage(businessID uint, status string, venueID *uint, lq ListQuery, page, pageSize int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := s.db.Model(&models.Event{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if venueID != nil {
		query = query.Where("venue_id = ?", *venueID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Venue").Preload("Partner").
		Order("start_time DESC").Offset(offset).Limit(pageSize).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update 更新活动
func (s *EventService) Update(businessID, id uint, title string, startTime, endTime time.Time, venueID, partnerID *uint, guestCount int, notes string) (*models.Event, error) {
	event, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if event.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if err := s.validateTimes(startTime, endTime); err != nil {
		return nil, err
	}
	if venueID != nil {
		if err := s.checkVenueRef(businessID, *venueID); err != nil {
			return nil, err
		}
	}
	if partnerID != nil {
		if err := s.checkPartnerRef(businessID, *partnerID); err != nil {
			return nil, err
		}
	}

	event.Title = title
	event.StartTime = startTime
	event.EndTime = endTime
	event.VenueID = venueID
	event.PartnerID = partnerID
	event.GuestCount = guestCount
	event.Notes = notes

	err = s.db.Save(event).Error
	return event, err
}

// UpdateStatus 更新活动状态
func (s *EventService) UpdateStatus(businessID, id uint, status string) (*models.Event, error) {
	if !models.IsValidEventStatus(status) {
		return nil, errors.NewValidation("活动状态无效")
	}

	event, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if event.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	event.Status = status
	err = s.db.Save(event).Error
	return event, err
}

// ========== 归档生命周期 ==========

// Archive 归档活动
func (s *EventService) Archive(businessID, id, actorID uint) (*models.Event, error) {
	if err := archiveRecord(s.db, &models.Event{}, id, businessID, actorID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "event.archive", "event", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复活动
func (s *EventService) Restore(businessID, id, actorID uint) (*models.Event, error) {
	if err := restoreRecord(s.db, &models.Event{}, id, businessID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "event.restore", "event", id, nil)
	return s.GetByID(businessID, id)
}

// ========== 内部方法 ==========

func (s *EventService) validateTimes(startTime, endTime time.Time) error {
	if !endTime.After(startTime) {
		return errors.NewValidation("结束时间必须晚于开始时间")
	}
	return nil
}

func (s *EventService) checkVenueRef(businessID, venueID uint) error {
	var count int64
	s.db.Model(&models.Venue{}).
		Where("id = ? AND business_id = ? AND is_archived = ?", venueID, businessID, false).
		Count(&count)
	if count == 0 {
		return errors.NewValidation("场地不存在")
	}
	return nil
}

func (s *EventService) checkPartnerRef(businessID, partnerID uint) error {
	var count int64
	s.db.Model(&models.Partner{}).
		Where("id = ? AND business_id = ? AND is_archived = ?", partnerID, businessID, false).
		Count(&count)
	if count == 0 {
		return errors.NewValidation("伙伴不存在")
	}
	return nil
}
