package models

// Supply 物资模型（桌椅、餐具、设备等库存）
type Supply struct {
	BaseModel
	BusinessID   uint   `json:"business_id" gorm:"not null;index:idx_supplies_business_archived"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Category     string `json:"category" gorm:"size:50"`
	Quantity     int    `json:"quantity" gorm:"default:0"`
	Unit         string `json:"unit" gorm:"size:20"`          // 计量单位，如 "件"、"箱"
	ReorderLevel int    `json:"reorder_level" gorm:"default:0"` // 低于该数量需要补货
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	Archivable

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
}

// NeedsReorder 判断是否需要补货
func (s *Supply) NeedsReorder() bool {
	return s.ReorderLevel > 0 && s.Quantity < s.ReorderLevel
}
