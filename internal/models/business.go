package models

// Business 商家模型（租户），数据隔离的单位
type Business struct {
	BaseModel
	Name     string  `json:"name" gorm:"not null;size:100"`
	Email    string  `json:"email" gorm:"size:100;index"`
	Phone    *string `json:"phone" gorm:"size:20"`
	Address  string  `json:"address" gorm:"size:255"`
	IsActive bool    `json:"is_active" gorm:"default:true"`
	Archivable
}

// TableName 表名
func (b *Business) TableName() string {
	return "businesses"
}

// Venue 场地模型 - 商家内可预订的空间
type Venue struct {
	BaseModel
	BusinessID  uint   `json:"business_id" gorm:"not null;index:idx_venues_business_archived"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"size:500"`
	Capacity    int    `json:"capacity" gorm:"default:0"` // 容纳人数
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
}
