package models

// Partner 合作伙伴模型（供应商/承办方等外部协作方）
//
// 邮箱在同一商家的未归档伙伴间唯一；归档后邮箱可被新伙伴复用，
// 恢复时需重新校验。
type Partner struct {
	BaseModel
	BusinessID uint    `json:"business_id" gorm:"not null;index:idx_partners_business_archived"`
	Name       string  `json:"name" gorm:"not null;size:100"`
	Email      string  `json:"email" gorm:"size:100;index"`
	Phone      *string `json:"phone" gorm:"size:20"`
	Company    string  `json:"company" gorm:"size:100"`
	Notes      string  `json:"notes" gorm:"size:500"`
	IsActive   bool    `json:"is_active" gorm:"default:true"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
}
