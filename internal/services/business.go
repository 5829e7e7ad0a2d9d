package services

import (
	goerrors "errors"
	"unicode/utf8"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type BusinessService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewBusinessService() *BusinessService {
	return &BusinessService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建商家（平台级操作）
func (s *BusinessService) Create(name, email, address string, phone *string) (*models.Business, error) {
	if !validateEntityName(name) {
		return nil, errors.NewValidation("商家名称长度必须在2-100个字符之间")
	}

	business := &models.Business{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Address:  address,
		IsActive: true,
	}

	err := s.db.Create(business).Error
	return business, err
}

// GetByID 根据ID获取商家
func (s *BusinessService) GetByID(id uint) (*models.Business, error) {
	var business models.Business
	err := s.db.First(&business, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// GetWithPage 分页获取商家列表
func (s *BusinessService) GetWithPage(keyword string, lq ListQuery, page, pageSize int) ([]*models.Business, int64, error) {
	var businesses []*models.Business
	var total int64

	query := s.db.Model(&models.Business{})
	query = applyArchiveVisibility(query, lq)

	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&businesses).Error
	if err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

// Update 更新商家
func (s *BusinessService) Update(id uint, name, email, address string, phone *string) (*models.Business, error) {
	business, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if business.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if !validateEntityName(name) {
		return nil, errors.NewValidation("商家名称长度必须在2-100个字符之间")
	}

	business.Name = name
	business.Email = email
	business.Phone = phone
	business.Address = address

	err = s.db.Save(business).Error
	return business, err
}

// ========== 归档生命周期 ==========

// Archive 归档商家，同时强制停用
func (s *BusinessService) Archive(id, actorID uint) (*models.Business, error) {
	if err := archiveRecord(s.db, &models.Business{}, id, 0, actorID, true); err != nil {
		return nil, err
	}

	s.activity.Record(id, actorID, "business.archive", "business", id, nil)
	return s.GetByID(id)
}

// Restore 恢复商家
func (s *BusinessService) Restore(id, actorID uint) (*models.Business, error) {
	if err := restoreRecord(s.db, &models.Business{}, id, 0, true); err != nil {
		return nil, err
	}

	s.activity.Record(id, actorID, "business.restore", "business", id, nil)
	return s.GetByID(id)
}

// validateEntityName 通用名称长度校验
func validateEntityName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 2 && runeCount <= 100
}
