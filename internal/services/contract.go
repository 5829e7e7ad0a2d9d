package services

import (
	goerrors "errors"
	"fmt"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewContractService() *ContractService {
	return &ContractService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// Create 创建合同
func (s *ContractService) Create(businessID uint, partnerID *uint, title string, startDate time.Time, endDate *time.Time, notes string) (*models.Contract, error) {
	if title == "" {
		return nil, errors.NewValidation("合同标题不能为空")
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, errors.NewValidation("结束日期必须晚于开始日期")
	}
	if partnerID != nil {
		if err := checkTenantRef(s.db, &models.Partner{}, *partnerID, businessID, "伙伴不存在"); err != nil {
			return nil, err
		}
	}

	contract := &models.Contract{
		BusinessID: businessID,
		PartnerID:  partnerID,
		Number:     fmt.Sprintf("CTR-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8]),
		Title:      title,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     models.ContractStatusDraft,
		Notes:      notes,
	}

	err := s.db.Create(contract).Error
	return contract, err
}

// GetByID 根据ID获取合同（租户内）
func (s *ContractService) GetByID(businessID, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.Where("business_id = ?", businessID).
		Preload("Partner").
		First(&contract, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// GetWithPage 分页获取合同列表
func (s *ContractService) GetWithPage(businessID uint, status string, partnerID *uint, lq ListQuery, page, pageSize int) ([]*models.Contract, int64, error) {
	var contracts []*models.Contract
	var total int64

	query := s.db.Model(&models.Contract{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if partnerID != nil {
		query = query.Where("partner_id = ?", *partnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Partner").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&contracts).Error
	if err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

// UpdateStatus 更新合同状态
func (s *ContractService) UpdateStatus(businessID, id uint, status string) (*models.Contract, error) {
	switch status {
	case models.ContractStatusDraft, models.ContractStatusActive,
		models.ContractStatusExpired, models.ContractStatusTerminated:
	default:
		return nil, errors.NewValidation("合同状态无效")
	}

	contract, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if contract.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	contract.Status = status
	err = s.db.Save(contract).Error
	return contract, err
}

// Archive 归档合同
func (s *ContractService) Archive(businessID, id, actorID uint) (*models.Contract, error) {
	if err := archiveRecord(s.db, &models.Contract{}, id, businessID, actorID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "contract.archive", "contract", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复合同
func (s *ContractService) Restore(businessID, id, actorID uint) (*models.Contract, error) {
	if err := restoreRecord(s.db, &models.Contract{}, id, businessID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "contract.restore", "contract", id, nil)
	return s.GetByID(businessID, id)
}
