package services

import (
	goerrors "errors"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type VenueService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewVenueService() *VenueService {
	return &VenueService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// Create 创建场地
func (s *VenueService) Create(businessID uint, name, description string, capacity int) (*models.Venue, error) {
	if !validateEntityName(name) {
		return nil, errors.NewValidation("场地名称长度必须在2-100个字符之间")
	}
	if capacity < 0 {
		return nil, errors.NewValidation("容纳人数不能为负数")
	}

	venue := &models.Venue{
		BusinessID:  businessID,
		Name:        name,
		Description: description,
		Capacity:    capacity,
		IsActive:    true,
	}

	err := s.db.Create(venue).Error
	return venue, err
}

// GetByID 根据ID获取场地（租户内）
func (s *VenueService) GetByID(businessID, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.Where("business_id = ?", businessID).First(&venue, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &venue, nil
}

// GetWithPage 分页获取场地列表
func (s *VenueService) GetWithPage(businessID uint, keyword string, lq ListQuery, page, pageSize int) ([]*models.Venue, int64, error) {
	var venues []*models.Venue
	var total int64

	query := s.db.Model(&models.Venue{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name").Offset(offset).Limit(pageSize).Find(&venues).Error
	if err != nil {
		return nil, 0, err
	}

	return venues, total, nil
}

// Update 更新场地
func (s *VenueService) Update(businessID, id uint, name, description string, capacity int) (*models.Venue, error) {
	venue, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if venue.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if !validateEntityName(name) {
		return nil, errors.NewValidation("场地名称长度必须在2-100个字符之间")
	}
	if capacity < 0 {
		return nil, errors.NewValidation("容纳人数不能为负数")
	}

	venue.Name = name
	venue.Description = description
	venue.Capacity = capacity

	err = s.db.Save(venue).Error
	return venue, err
}

// Archive 归档场地
//
// 有未完结活动引用的场地不可归档。
func (s *VenueService) Archive(businessID, id, actorID uint) (*models.Venue, error) {
	var count int64
	s.db.Model(&models.Event{}).
		Where("business_id = ? AND venue_id = ? AND status NOT IN ? AND is_archived = ?",
			businessID, id, models.EventTerminalStatuses, false).
		Count(&count)
	if count > 0 {
		return nil, errors.NewConflict("场地存在未完结的活动，无法归档")
	}

	if err := archiveRecord(s.db, &models.Venue{}, id, businessID, actorID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "venue.archive", "venue", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复场地
func (s *VenueService) Restore(businessID, id, actorID uint) (*models.Venue, error) {
	if err := restoreRecord(s.db, &models.Venue{}, id, businessID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "venue.restore", "venue", id, nil)
	return s.GetByID(businessID, id)
}
