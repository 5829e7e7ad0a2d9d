package models

import "fmt"

// Permission 权限模型
//
// Name是路由声明与权限目录之间的唯一耦合，约定为 "<module>.<action>.<scope>"，
// 如 "roles.update.all"。(Module, Action, Scope)三元组唯一。
type Permission struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`                      // 权限名，如 "finance.delete.all"
	Module      string `gorm:"size:50;not null;uniqueIndex:idx_permission_triple" json:"module"` // 所属业务模块
	Action      string `gorm:"size:50;not null;uniqueIndex:idx_permission_triple" json:"action"` // 操作类型
	Scope       string `gorm:"size:20;not null;uniqueIndex:idx_permission_triple" json:"scope"`  // 作用范围
	DisplayName string `gorm:"size:100;not null" json:"display_name"`                          // 显示名称
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// 权限模块常量
const (
	ModuleBusinesses  = "businesses"  // 商家管理
	ModuleVenues      = "venues"      // 场地管理
	ModuleUsers       = "users"       // 用户管理
	ModuleRoles       = "roles"       // 角色管理
	ModulePermissions = "permissions" // 权限目录
	ModulePartners    = "partners"    // 合作伙伴管理
	ModuleEvents      = "events"      // 活动管理
	ModuleReminders   = "reminders"   // 提醒管理
	ModuleSupplies    = "supplies"    // 物资管理
	ModuleInvoices    = "invoices"    // 发票管理
	ModuleContracts   = "contracts"   // 合同管理
	ModuleFinance     = "finance"     // 财务管理
)

// 权限操作常量
const (
	ActionCreate = "create" // 创建
	ActionRead   = "read"   // 读取
	ActionUpdate = "update" // 更新
	ActionDelete = "delete" // 删除（含归档/恢复）
	ActionManage = "manage" // 管理
	ActionExport = "export" // 导出
)

// 权限范围常量
const (
	ScopeOwn  = "own"  // 仅本人
	ScopeTeam = "team" // 本团队
	ScopeAll  = "all"  // 全商家
)

// CatalogModules 权限目录覆盖的业务模块
var CatalogModules = []string{
	ModuleBusinesses, ModuleVenues, ModuleUsers,
	ModuleRoles, ModulePermissions, ModulePartners,
	ModuleEvents, ModuleReminders, ModuleSupplies,
	ModuleInvoices, ModuleContracts, ModuleFinance,
}

// CatalogActions 目录启动时种子化的基础操作
//
// 路由上声明的权限名必须由该组合生成，目录外的名字对非超管永远鉴权失败。
var CatalogActions = []string{
	ActionCreate, ActionRead, ActionUpdate, ActionDelete,
}

// PermissionName 按约定拼接权限名
func PermissionName(module, action, scope string) string {
	return fmt.Sprintf("%s.%s.%s", module, action, scope)
}
