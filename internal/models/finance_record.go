package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceRecord 财务流水模型
type FinanceRecord struct {
	BaseModel
	BusinessID uint            `json:"business_id" gorm:"not null;index:idx_finance_business_archived"`
	Kind       string          `json:"kind" gorm:"size:20;not null"` // income 或 expense
	Category   string          `json:"category" gorm:"size:50"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Currency   string          `json:"currency" gorm:"size:3;default:'EUR'"`
	OccurredAt time.Time       `json:"occurred_at" gorm:"not null;index"`
	PartnerID  *uint           `json:"partner_id" gorm:"index"`
	InvoiceID  *uint           `json:"invoice_id" gorm:"index"`
	Notes      string          `json:"notes" gorm:"size:500"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Partner  *Partner  `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Invoice  *Invoice  `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

// 财务流水类型常量
const (
	FinanceKindIncome  = "income"
	FinanceKindExpense = "expense"
)

// IsValidFinanceKind 检查流水类型是否有效
func IsValidFinanceKind(kind string) bool {
	return kind == FinanceKindIncome || kind == FinanceKindExpense
}
