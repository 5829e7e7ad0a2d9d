package services

import (
	goerrors "errors"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type PartnerService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewPartnerService() *PartnerService {
	return &PartnerService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建合作伙伴
//
// 邮箱唯一性只在同商家的未归档伙伴间校验：归档伙伴的邮箱可以
// 被新伙伴复用。
func (s *PartnerService) Create(businessID uint, name, email, company, notes string, phone *string) (*models.Partner, error) {
	if !validateEntityName(name) {
		return nil, errors.NewValidation("伙伴名称长度必须在2-100个字符之间")
	}

	if email != "" {
		if taken, err := s.emailTaken(businessID, email, 0); err != nil {
			return nil, err
		} else if taken {
			return nil, errors.NewConflict("邮箱已被活跃伙伴使用")
		}
	}

	partner := &models.Partner{
		BusinessID: businessID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Company:    company,
		Notes:      notes,
		IsActive:   true,
	}

	err := s.db.Create(partner).Error
	return partner, err
}

// GetByID 根据ID获取伙伴（租户内，归档记录仍可读取）
func (s *PartnerService) GetByID(businessID, id uint) (*models.Partner, error) {
	var partner models.Partner
	err := s.db.Where("business_id = ?", businessID).First(&partner, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// GetWithPage 分页获取伙伴列表
func (s *PartnerService) GetWithPage(businessID uint, keyword string, lq ListQuery, page, pageSize int) ([]*models.Partner, int64, error) {
	var partners []*models.Partner
	var total int64

	query := s.db.Model(&models.Partner{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name").Offset(offset).Limit(pageSize).Find(&partners).Error
	if err != nil {
		return nil, 0, err
	}

	return partners, total, nil
}

// Update 更新伙伴
func (s *PartnerService) Update(businessID, id uint, name, email, company, notes string, phone *string) (*models.Partner, error) {
	partner, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if partner.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if !validateEntityName(name) {
		return nil, errors.NewValidation("伙伴名称长度必须在2-100个字符之间")
	}
	if email != "" && email != partner.Email {
		if taken, err := s.emailTaken(businessID, email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, errors.NewConflict("邮箱已被活跃伙伴使用")
		}
	}

	partner.Name = name
	partner.Email = email
	partner.Phone = phone
	partner.Company = company
	partner.Notes = notes

	err = s.db.Save(partner).Error
	return partner, err
}

// Delete 物理删除伙伴
//
// 仅允许删除零关联的伙伴：存在任何关联活动（无论状态）即拒绝。
func (s *PartnerService) Delete(businessID, id, actorID uint) error {
	partner, err := s.GetByID(businessID, id)
	if err != nil {
		return err
	}

	var eventCount int64
	s.db.Model(&models.Event{}).Where("partner_id = ?", id).Count(&eventCount)
	if eventCount > 0 {
		return errors.NewConflict("伙伴存在关联活动，只能归档不能删除")
	}

	if err := s.db.Delete(partner).Error; err != nil {
		return err
	}

	s.activity.Record(businessID, actorID, "partner.delete", "partner", id, nil)
	return nil
}

// ========== 归档生命周期 ==========

// Archive 归档伙伴
//
// 被非终态活动引用的伙伴不可归档（终态：completed/cancelled）。
func (s *PartnerService) Archive(businessID, id, actorID uint) (*models.Partner, error) {
	var count int64
	s.db.Model(&models.Event{}).
		Where("business_id = ? AND partner_id = ? AND status NOT IN ? AND is_archived = ?",
			businessID, id, models.EventTerminalStatuses, false).
		Count(&count)
	if count > 0 {
		return nil, errors.NewConflict("伙伴存在未完结的关联活动，无法归档")
	}

	if err := archiveRecord(s.db, &models.Partner{}, id, businessID, actorID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "partner.archive", "partner", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复伙伴，恢复前重新校验邮箱唯一性
//
// 校验失败返回冲突并保持归档状态。
func (s *PartnerService) Restore(businessID, id, actorID uint) (*models.Partner, error) {
	partner, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if !partner.IsArchived {
		return nil, errors.ErrNotArchived
	}

	if partner.Email != "" {
		if taken, err := s.emailTaken(businessID, partner.Email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, errors.NewConflict("邮箱已被活跃伙伴占用，无法恢复")
		}
	}

	if err := restoreRecord(s.db, &models.Partner{}, id, businessID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "partner.restore", "partner", id, nil)
	return s.GetByID(businessID, id)
}

// ========== 内部方法 ==========

// emailTaken 邮箱是否被同商家其他未归档伙伴占用
func (s *PartnerService) emailTaken(businessID uint, email string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Partner{}).
		Where("business_id = ? AND LOWER(email) = LOWER(?) AND is_archived = ?", businessID, email, false)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
