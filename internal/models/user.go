package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户模型
//
// 用户最多属于一个商家；平台超级管理员不属于任何商家（BusinessID为空）。
// 生效权限 = (角色权限 ∪ 自定义授予) − 自定义撤销。
type User struct {
	BaseModel
	BusinessID   *uint   `json:"business_id" gorm:"index"`
	Name         string  `json:"name" gorm:"not null;size:100"`
	Email        string  `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string  `json:"-" gorm:"not null;size:255"`
	Phone        *string `json:"phone" gorm:"size:20"`
	RoleID       *uint   `json:"role_id" gorm:"index"`
	RoleType     string  `json:"role_type" gorm:"size:20;default:'staff'"` // 粗粒度角色：owner/manager/staff/viewer/custom
	IsSuperAdmin bool    `json:"is_super_admin" gorm:"default:false"`
	IsActive     bool    `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	Archivable

	// 关联关系
	Business           *Business    `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Role               *Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	GrantedPermissions []Permission `gorm:"many2many:user_granted_permissions;" json:"granted_permissions,omitempty"`
	RevokedPermissions []Permission `gorm:"many2many:user_revoked_permissions;" json:"revoked_permissions,omitempty"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// UserGrantedPermission 用户自定义授予关联表
type UserGrantedPermission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	PermissionID uint      `gorm:"not null;index" json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    uint      `json:"created_by"` // 谁授予的
}

// UserRevokedPermission 用户自定义撤销关联表
type UserRevokedPermission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	PermissionID uint      `gorm:"not null;index" json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    uint      `json:"created_by"`
}

// 粗粒度角色常量
const (
	RoleTypeOwner   = "owner"
	RoleTypeManager = "manager"
	RoleTypeStaff   = "staff"
	RoleTypeViewer  = "viewer"
	RoleTypeCustom  = "custom"
)

// SetPassword 设置密码
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsValidRoleType 检查粗粒度角色是否有效
func IsValidRoleType(roleType string) bool {
	switch roleType {
	case RoleTypeOwner, RoleTypeManager, RoleTypeStaff, RoleTypeViewer, RoleTypeCustom:
		return true
	default:
		return false
	}
}
