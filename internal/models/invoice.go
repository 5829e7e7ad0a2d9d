package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice 发票模型
type Invoice struct {
	BaseModel
	BusinessID uint            `json:"business_id" gorm:"not null;index:idx_invoices_business_archived"`
	PartnerID  *uint           `json:"partner_id" gorm:"index"`
	EventID    *uint           `json:"event_id" gorm:"index"`
	Number     string          `json:"number" gorm:"uniqueIndex;size:50;not null"` // 对外发票号
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	TaxAmount  decimal.Decimal `json:"tax_amount" gorm:"type:numeric(14,2)"`
	Total      decimal.Decimal `json:"total" gorm:"type:numeric(14,2);not null"`
	Currency   string          `json:"currency" gorm:"size:3;default:'EUR'"`
	Status     string          `json:"status" gorm:"size:20;default:'draft'"`
	DueDate    *time.Time      `json:"due_date"`
	PaidAt     *time.Time      `json:"paid_at"`
	Notes      string          `json:"notes" gorm:"size:500"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Partner  *Partner  `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Event    *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// 发票状态常量
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)

// Contract 合同模型
type Contract struct {
	BaseModel
	BusinessID uint       `json:"business_id" gorm:"not null;index:idx_contracts_business_archived"`
	PartnerID  *uint      `json:"partner_id" gorm:"index"`
	Number     string     `json:"number" gorm:"uniqueIndex;size:50;not null"`
	Title      string     `json:"title" gorm:"not null;size:150"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Status     string     `json:"status" gorm:"size:20;default:'draft'"`
	Notes      string     `json:"notes" gorm:"size:500"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Partner  *Partner  `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
}

// 合同状态常量
const (
	ContractStatusDraft      = "draft"
	ContractStatusActive     = "active"
	ContractStatusExpired    = "expired"
	ContractStatusTerminated = "terminated"
)
