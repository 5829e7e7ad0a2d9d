package services

import (
	goerrors "errors"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type SupplyService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewSupplyService() *SupplyService {
	return &SupplyService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// Create 创建物资
func (s *SupplyService) Create(businessID uint, name, category, unit string, quantity, reorderLevel int) (*models.Supply, error) {
	if !validateEntityName(name) {
		return nil, errors.NewValidation("物资名称长度必须在2-100个字符之间")
	}
	if quantity < 0 || reorderLevel < 0 {
		return nil, errors.NewValidation("数量不能为负数")
	}

	supply := &models.Supply{
		BusinessID:   businessID,
		Name:         name,
		Category:     category,
		Quantity:     quantity,
		Unit:         unit,
		ReorderLevel: reorderLevel,
		IsActive:     true,
	}

	err := s.db.Create(supply).Error
	return supply, err
}

// GetByID 根据ID获取物资（租户内）
func (s *SupplyService) GetByID(businessID, id uint) (*models.Supply, error) {
	var supply models.Supply
	err := s.db.Where("business_id = ?", businessID).First(&supply, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &supply, nil
}

// GetWithPage 分页获取物资列表
func (s *SupplyService) GetWithPage(businessID uint, category, keyword string, lq ListQuery, page, pageSize int) ([]*models.Supply, int64, error) {
	var supplies []*models.Supply
	var total int64

	query := s.db.Model(&models.Supply{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name").Offset(offset).Limit(pageSize).Find(&supplies).Error
	if err != nil {
		return nil, 0, err
	}

	return supplies, total, nil
}

// Update 更新物资
func (s *SupplyService) Update(businessID, id uint, name, category, unit string, quantity, reorderLevel int) (*models.Supply, error) {
	supply, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if supply.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if !validateEntityName(name) {
		return nil, errors.NewValidation("物资名称长度必须在2-100个字符之间")
	}
	if quantity < 0 || reorderLevel < 0 {
		return nil, errors.NewValidation("数量不能为负数")
	}

	supply.Name = name
	supply.Category = category
	supply.Unit = unit
	supply.Quantity = quantity
	supply.ReorderLevel = reorderLevel

	err = s.db.Save(supply).Error
	return supply, err
}

// AdjustQuantity 增减库存数量
func (s *SupplyService) AdjustQuantity(businessID, id uint, delta int) (*models.Supply, error) {
	supply, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if supply.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}
	if supply.Quantity+delta < 0 {
		return nil, errors.NewValidation("库存不足")
	}

	supply.Quantity += delta
	err = s.db.Save(supply).Error
	return supply, err
}

// Archive 归档物资
func (s *SupplyService) Archive(businessID, id, actorID uint) (*models.Supply, error) {
	if err := archiveRecord(s.db, &models.Supply{}, id, businessID, actorID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "supply.archive", "supply", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复物资
func (s *SupplyService) Restore(businessID, id, actorID uint) (*models.Supply, error) {
	if err := restoreRecord(s.db, &models.Supply{}, id, businessID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "supply.restore", "supply", id, nil)
	return s.GetByID(businessID, id)
}
