package models

import "time"

// Role 角色模型
//
// 角色属于且仅属于一个商家。角色名在同一商家的未归档角色间唯一
// （大小写不敏感），已归档角色的名称允许被复用。
type Role struct {
	BaseModel
	BusinessID  uint   `gorm:"not null;index:idx_roles_business_archived" json:"business_id"` // 所属商家
	Name        string `gorm:"size:100;not null" json:"name"`                                 // 角色名称
	Description string `gorm:"size:255" json:"description"`
	Archivable

	// 关联关系
	Business    *Business    `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// RolePermission 角色权限关联表
type RolePermission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	PermissionID uint      `gorm:"not null;index" json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
}
