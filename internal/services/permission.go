package services

import (
	goerrors "errors"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

// PermissionStore 权限解析依赖的持久化查询
//
// 解析器通过显式仓储接口取"角色的权限"，而不是隐式懒加载，
// 便于用内存假实现做单元测试。
type PermissionStore interface {
	// GetRolePermissionIDs 返回角色的权限ID集合；角色不存在或已归档返回空集
	GetRolePermissionIDs(roleID uint) ([]uint, error)
	// GetGrantedPermissionIDs 返回用户自定义授予的权限ID集合
	GetGrantedPermissionIDs(userID uint) ([]uint, error)
	// GetRevokedPermissionIDs 返回用户自定义撤销的权限ID集合
	GetRevokedPermissionIDs(userID uint) ([]uint, error)
	// GetPermissionByName 按权限名查找目录条目，不存在返回ErrNotFound
	GetPermissionByName(name string) (*models.Permission, error)
}

// gormPermissionStore PermissionStore的数据库实现
type gormPermissionStore struct {
	db *gorm.DB
}

func (s *gormPermissionStore) GetRolePermissionIDs(roleID uint) ([]uint, error) {
	var role models.Role
	err := s.db.First(&role, roleID).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	// 已归档角色不再贡献权限
	if role.IsArchived {
		return nil, nil
	}

	var ids []uint
	err = s.db.Model(&models.RolePermission{}).
		Where("role_id = ?", roleID).
		Pluck("permission_id", &ids).Error
	return ids, err
}

func (s *gormPermissionStore) GetGrantedPermissionIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.UserGrantedPermission{}).
		Where("user_id = ?", userID).
		Pluck("permission_id", &ids).Error
	return ids, err
}

func (s *gormPermissionStore) GetRevokedPermissionIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.UserRevokedPermission{}).
		Where("user_id = ?", userID).
		Pluck("permission_id", &ids).Error
	return ids, err
}

func (s *gormPermissionStore) GetPermissionByName(name string) (*models.Permission, error) {
	var permission models.Permission
	err := s.db.Where("name = ?", name).First(&permission).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &permission, nil
}

type PermissionService struct {
	db    *gorm.DB
	store PermissionStore
}

func NewPermissionService() *PermissionService {
	db := database.GetDB()
	return &PermissionService{
		db:    db,
		store: &gormPermissionStore{db: db},
	}
}

// NewPermissionServiceWithStore 使用自定义仓储创建（测试用）
func NewPermissionServiceWithStore(store PermissionStore) *PermissionService {
	return &PermissionService{store: store}
}

// ========== 权限解析 ==========

// ResolveEffectivePermissions 计算用户的生效权限集
//
// 算法：(角色权限 ∪ 自定义授予) − 自定义撤销。撤销永远最高优先级：
// 同一权限既在角色/授予中又在撤销中时，结果不包含它。
// 超级管理员由调用方短路处理，本方法不被调用。
// 无角色且无授予的用户解析为空集。
func (s *PermissionService) ResolveEffectivePermissions(user *models.User) (map[uint]struct{}, error) {
	effective := make(map[uint]struct{})

	if user.RoleID != nil {
		roleIDs, err := s.store.GetRolePermissionIDs(*user.RoleID)
		if err != nil {
			return nil, err
		}
		for _, id := range roleIDs {
			effective[id] = struct{}{}
		}
	}

	grantedIDs, err := s.store.GetGrantedPermissionIDs(user.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range grantedIDs {
		effective[id] = struct{}{}
	}

	revokedIDs, err := s.store.GetRevokedPermissionIDs(user.ID)
	if err != nil {
		return nil, err
	}
	// 撤销非成员是空操作
	for _, id := range revokedIDs {
		delete(effective, id)
	}

	return effective, nil
}

// HasPermission 检查用户是否具有指定权限名
//
// 未知权限名永远不授权（返回false）。超级管理员绕过在中间件层处理。
func (s *PermissionService) HasPermission(user *models.User, permissionName string) (bool, error) {
	effective, err := s.ResolveEffectivePermissions(user)
	if err != nil {
		return false, err
	}
	return s.CheckName(effective, permissionName)
}

// CheckName 在已解析的生效权限集中检查权限名
//
// 解析对一致输入是纯函数，调用方可以在单个请求范围内缓存生效集，
// 对多个权限名复用本方法。
func (s *PermissionService) CheckName(effective map[uint]struct{}, permissionName string) (bool, error) {
	permission, err := s.store.GetPermissionByName(permissionName)
	if err != nil {
		if goerrors.Is(err, errors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	_, ok := effective[permission.ID]
	return ok, nil
}

// ========== 权限目录CRUD ==========

// GetWithPage 分页获取权限目录
func (s *PermissionService) GetWithPage(module, scope string, page, pageSize int) ([]*models.Permission, int64, error) {
	var permissions []*models.Permission
	var total int64

	query := s.db.Model(&models.Permission{})
	if module != "" {
		query = query.Where("module = ?", module)
	}
	if scope != "" {
		query = query.Where("scope = ?", scope)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("module, action, scope").Offset(offset).Limit(pageSize).Find(&permissions).Error
	if err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}

// GetByID 根据ID获取权限
func (s *PermissionService) GetByID(id uint) (*models.Permission, error) {
	var permission models.Permission
	err := s.db.First(&permission, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &permission, nil
}

// GetByName 根据权限名获取权限
func (s *PermissionService) GetByName(name string) (*models.Permission, error) {
	return s.store.GetPermissionByName(name)
}

// Create 创建权限（系统级操作，一般由种子数据预设）
func (s *PermissionService) Create(module, action, scope, displayName string) (*models.Permission, error) {
	// 三元组唯一
	var count int64
	s.db.Model(&models.Permission{}).
		Where("module = ? AND action = ? AND scope = ?", module, action, scope).
		Count(&count)
	if count > 0 {
		return nil, errors.NewConflict("权限三元组已存在")
	}

	permission := &models.Permission{
		Name:        models.PermissionName(module, action, scope),
		Module:      module,
		Action:      action,
		Scope:       scope,
		DisplayName: displayName,
		IsActive:    true,
	}

	err := s.db.Create(permission).Error
	return permission, err
}
