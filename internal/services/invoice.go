package services

import (
	goerrors "errors"
	"fmt"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建发票
func (s *InvoiceService) Create(businessID uint, partnerID, eventID *uint, amount, taxAmount decimal.Decimal, currency string, dueDate *time.Time, notes string) (*models.Invoice, error) {
	if amount.IsNegative() || taxAmount.IsNegative() {
		return nil, errors.NewValidation("金额不能为负数")
	}

	if partnerID != nil {
		if err := checkTenantRef(s.db, &models.Partner{}, *partnerID, businessID, "伙伴不存在"); err != nil {
			return nil, err
		}
	}
	if eventID != nil {
		if err := checkTenantRef(s.db, &models.Event{}, *eventID, businessID, "活动不存在"); err != nil {
			return nil, err
		}
	}
	if currency == "" {
		currency = "EUR"
	}

	invoice := &models.Invoice{
		BusinessID: businessID,
		PartnerID:  partnerID,
		EventID:    eventID,
		Number:     s.generateNumber(),
		Amount:     amount,
		TaxAmount:  taxAmount,
		Total:      amount.Add(taxAmount),
		Currency:   currency,
		Status:     models.InvoiceStatusDraft,
		DueDate:    dueDate,
		Notes:      notes,
	}

	err := s.db.Create(invoice).Error
	return invoice, err
}

// GetByID 根据ID获取发票（租户内）
func (s *InvoiceService) GetByID(businessID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Where("business_id = ?", businessID).
		Preload("Partner").Preload("Event").
		First(&invoice, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// GetWithPage 分页获取发票列表
func (s *InvoiceService) GetWithPage(businessID uint, status string, partnerID *uint, lq ListQuery, page, pageSize int) ([]*models.Invoice, int64, error) {
	var invoices []*models.Invoice
	var total int64

	query := s.db.Model(&models.Invoice{}).Where("business_id = ?", businessID)
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
	err := query.Preload("Partner").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// UpdateStatus 更新发票状态
func (s *InvoiceService) UpdateStatus(businessID, id uint, status string) (*models.Invoice, error) {
	switch status {
	case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid, models.InvoiceStatusVoid:
	default:
		return nil, errors.NewValidation("发票状态无效")
	}

	invoice, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if invoice.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	invoice.Status = status
	if status == models.InvoiceStatusPaid && invoice.PaidAt == nil {
		now := time.Now()
		invoice.PaidAt = &now
	}

	err = s.db.Save(invoice).Error
	return invoice, err
}

// ========== 归档生命周期 ==========

// Archive 归档发票
func (s *InvoiceService) Archive(businessID, id, actorID uint) (*models.Invoice, error) {
	if err := archiveRecord(s.db, &models.Invoice{}, id, businessID, actorID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "invoice.archive", "invoice", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复发票
func (s *InvoiceService) Restore(businessID, id, actorID uint) (*models.Invoice, error) {
	if err := restoreRecord(s.db, &models.Invoice{}, id, businessID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "invoice.restore", "invoice", id, nil)
	return s.GetByID(businessID, id)
}

// ========== 内部方法 ==========

// generateNumber 生成对外发票号
func (s *InvoiceService) generateNumber() string {
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8])
}
