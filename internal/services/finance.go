package services

import (
	goerrors "errors"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FinanceService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewFinanceService() *FinanceService {
	return &FinanceService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// Create 创建财务流水
func (s *FinanceService) Create(businessID uint, kind, category string, amount decimal.Decimal, currency string, occurredAt time.Time, partnerID, invoiceID *uint, notes string) (*models.FinanceRecord, error) {
	if !models.IsValidFinanceKind(kind) {
		return nil, errors.NewValidation("流水类型必须是 income 或 expense")
	}
	if amount.IsNegative() {
		return nil, errors.NewValidation("金额不能为负数")
	}
	if occurredAt.IsZero() {
		return nil, errors.NewValidation("发生时间不能为空")
	}
	if partnerID != nil {
		if err := checkTenantRef(s.db, &models.Partner{}, *partnerID, businessID, "伙伴不存在"); err != nil {
			return nil, err
		}
	}
	if invoiceID != nil {
		if err := checkTenantRef(s.db, &models.Invoice{}, *invoiceID, businessID, "发票不存在"); err != nil {
			return nil, err
		}
	}
	if currency == "" {
		currency = "EUR"
	}

	record := &models.FinanceRecord{
		BusinessID: businessID,
		Kind:       kind,
		Category:   category,
		Amount:     amount,
		Currency:   currency,
		OccurredAt: occurredAt,
		PartnerID:  partnerID,
		InvoiceID:  invoiceID,
		Notes:      notes,
	}

	err := s.db.Create(record).Error
	return record, err
}

// GetByID 根据ID获取财务流水（租户内）
func (s *FinanceService) GetByID(businessID, id uint) (*models.FinanceRecord, error) {
	var record models.FinanceRecord
	err := s.db.Where("business_id = ?", businessID).
		Preload("Partner").Preload("Invoice").
		First(&record, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetWithPage 分页获取财务流水列表
func (s *FinanceService) GetWithPage(businessID uint, kind, category string, lq ListQuery, page, pageSize int) ([]*models.FinanceRecord, int64, error) {
	var records []*models.FinanceRecord
	var total int64

	query := s.db.Model(&models.FinanceRecord{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("occurred_at DESC").Offset(offset).Limit(pageSize).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update 更新财务流水
func (s *FinanceService) Update(businessID, id uint, category string, amount *decimal.Decimal, notes *string) (*models.FinanceRecord, error) {
	record, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if record.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if category != "" {
		record.Category = category
	}
	if amount != nil {
		if amount.IsNegative() {
			return nil, errors.NewValidation("金额不能为负数")
		}
		record.Amount = *amount
	}
	if notes != nil {
		record.Notes = *notes
	}

	err = s.db.Save(record).Error
	return record, err
}

// Summarize 按类型汇总商家在给定时间范围内的未归档流水
func (s *FinanceService) Summarize(businessID uint, from, to time.Time) (income, expense decimal.Decimal, err error) {
	type row struct {
		Kind  string
		Total decimal.Decimal
	}
	var rows []row

	query := s.db.Model(&models.FinanceRecord{}).
		Select("kind, COALESCE(SUM(amount), 0) AS total").
		Where("business_id = ? AND is_archived = ?", businessID, false).
		Group("kind")
	if !from.IsZero() {
		query = query.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("occurred_at < ?", to)
	}

	if err = query.Scan(&rows).Error; err != nil {
		return
	}

	income, expense = decimal.Zero, decimal.Zero
	for _, r := range rows {
		switch r.Kind {
		case models.FinanceKindIncome:
			income = r.Total
		case models.FinanceKindExpense:
			expense = r.Total
		}
	}
	return
}

// Archive 归档财务流水
func (s *FinanceService) Archive(businessID, id, actorID uint) (*models.FinanceRecord, error) {
	if err := archiveRecord(s.db, &models.FinanceRecord{}, id, businessID, actorID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "finance.archive", "finance_record", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复财务流水
func (s *FinanceService) Restore(businessID, id, actorID uint) (*models.FinanceRecord, error) {
	if err := restoreRecord(s.db, &models.FinanceRecord{}, id, businessID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "finance.restore", "finance_record", id, nil)
	return s.GetByID(businessID, id)
}
