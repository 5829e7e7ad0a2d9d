package services

import (
	goerrors "errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type UserService struct {
	db         *gorm.DB
	permission *PermissionService
	activity   *ActivityLogService
}

func NewUserService() *UserService {
	return &UserService{
		db:         database.GetDB(),
		permission: NewPermissionService(),
		activity:   NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建用户（注册或owner邀请员工）
func (s *UserService) Create(businessID *uint, name, email, password, roleType string, roleID *uint) (*models.User, error) {
	if err := s.ValidateCreateParams(name, email, password, roleType); err != nil {
		return nil, err
	}

	// 邮箱全局唯一（大小写不敏感），含归档用户：归档用户恢复时
	// 需要原邮箱仍然可用
	if taken, err := s.emailTaken(email, 0, true); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.NewConflict("邮箱已存在")
	}

	// 细粒度角色必须属于同一商家
	if roleID != nil {
		if businessID == nil {
			return nil, errors.NewValidation("平台级用户不能绑定商家角色")
		}
		if err := s.checkRoleBelongs(*roleID, *businessID); err != nil {
			return nil, err
		}
	}

	user := &models.User{
		BusinessID: businessID,
		Name:       name,
		Email:      strings.ToLower(email),
		RoleID:     roleID,
		RoleType:   roleType,
		IsActive:   true,
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Business").Preload("Role.Permissions").First(&user, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetScoped 在商家范围内根据ID获取用户（跨租户与不存在不可区分）
func (s *UserService) GetScoped(businessID, id uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("business_id = ?", businessID).
		Preload("Role").
		First(&user, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Business").Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetWithPage 组合查询（分页）
func (s *UserService) GetWithPage(businessID uint, roleType, keyword string, lq ListQuery, page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := s.db.Model(&models.User{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if roleType != "" {
		query = query.Where("role_type = ?", roleType)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Role").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update 更新用户
func (s *UserService) Update(businessID, id uint, name, roleType string, roleID *uint) (*models.User, error) {
	user, err := s.GetScoped(businessID, id)
	if err != nil {
		return nil, err
	}
	if user.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if !s.validateName(name) {
		return nil, errors.NewValidation("姓名长度必须在2-50个字符之间")
	}
	if !models.IsValidRoleType(roleType) {
		return nil, errors.NewValidation("角色类型无效")
	}
	if roleID != nil {
		if err := s.checkRoleBelongs(*roleID, businessID); err != nil {
			return nil, err
		}
	}

	user.Name = name
	user.RoleType = roleType
	user.RoleID = roleID

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword 重置密码
func (s *UserService) ResetPassword(businessID, id uint, newPassword string) error {
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.GetScoped(businessID, id)
	if err != nil {
		return err
	}
	if user.IsArchived {
		return errors.ErrAlreadyArchived
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("密码加密失败: %v", err)
	}
	return s.db.Save(user).Error
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", now).Error
}

// ========== 自定义权限管理 ==========

// SetCustomPermissions 替换用户的自定义授予/撤销集合
//
// 集合语义：顺序无关，重复引用去重；撤销集合对角色权限和授予集合
// 都生效（撤销优先）。
func (s *UserService) SetCustomPermissions(businessID, userID uint, grantedIDs, revokedIDs []uint, actorID uint) error {
	user, err := s.GetScoped(businessID, userID)
	if err != nil {
		return err
	}
	if user.IsArchived {
		return errors.ErrAlreadyArchived
	}

	granted, err := s.loadPermissions(grantedIDs)
	if err != nil {
		return err
	}
	revoked, err := s.loadPermissions(revokedIDs)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("GrantedPermissions").Replace(granted); err != nil {
			return err
		}
		return tx.Model(user).Association("RevokedPermissions").Replace(revoked)
	})
	if err != nil {
		return err
	}

	s.activity.Record(businessID, actorID, "user.set_custom_permissions", "user", userID, map[string]interface{}{
		"granted": grantedIDs,
		"revoked": revokedIDs,
	})
	return nil
}

// GetEffectivePermissions 获取用户生效权限列表（展开为权限记录）
func (s *UserService) GetEffectivePermissions(user *models.User) ([]models.Permission, error) {
	// 超级管理员视为拥有目录中全部权限
	if user.IsSuperAdmin {
		var all []models.Permission
		err := s.db.Order("module, action, scope").Find(&all).Error
		return all, err
	}

	effective, err := s.permission.ResolveEffectivePermissions(user)
	if err != nil {
		return nil, err
	}
	if len(effective) == 0 {
		return []models.Permission{}, nil
	}

	ids := make([]uint, 0, len(effective))
	for id := range effective {
		ids = append(ids, id)
	}

	var permissions []models.Permission
	err = s.db.Where("id IN ?", ids).Order("module, action, scope").Find(&permissions).Error
	return permissions, err
}

// HasPermission 检查用户是否有指定权限
func (s *UserService) HasPermission(user *models.User, permissionName string) (bool, error) {
	if user.IsSuperAdmin {
		return true, nil
	}
	return s.permission.HasPermission(user, permissionName)
}

// ========== 归档生命周期 ==========

// Archive 归档用户（唯一的"删除"方式），同时强制停用
//
// 商家最后一个活跃owner不可归档，否则商家失去管理入口。
func (s *UserService) Archive(businessID, id, actorID uint) (*models.User, error) {
	user, err := s.GetScoped(businessID, id)
	if err != nil {
		return nil, err
	}

	if user.RoleType == models.RoleTypeOwner {
		var ownerCount int64
		s.db.Model(&models.User{}).
			Where("business_id = ? AND role_type = ? AND is_archived = ? AND id != ?",
				businessID, models.RoleTypeOwner, false, id).
			Count(&ownerCount)
		if ownerCount == 0 {
			return nil, errors.NewValidation("不能归档商家唯一的owner用户")
		}
	}

	if err := archiveRecord(s.db, &models.User{}, id, businessID, actorID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "user.archive", "user", id, nil)
	return s.GetScoped(businessID, id)
}

// Restore 恢复用户，恢复前重新校验邮箱唯一性
func (s *UserService) Restore(businessID, id, actorID uint) (*models.User, error) {
	user, err := s.GetScoped(businessID, id)
	if err != nil {
		return nil, err
	}
	if !user.IsArchived {
		return nil, errors.ErrNotArchived
	}

	// 邮箱可能已被归档期间创建的活跃用户占用
	if taken, err := s.emailTaken(user.Email, id, false); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.NewConflict("邮箱已被活跃用户占用，无法恢复")
	}

	if err := restoreRecord(s.db, &models.User{}, id, businessID, true); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "user.restore", "user", id, nil)
	return s.GetScoped(businessID, id)
}

// ========== 验证相关方法 ==========

func (s *UserService) validateName(name string) bool {
	runeCount := utf8.RuneCountInString(name)
	return runeCount >= 2 && runeCount <= 50
}

// ValidateEmail 验证邮箱
func (s *UserService) ValidateEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".") && len(email) >= 5 && len(email) <= 100
}

// ValidatePassword 验证密码
func (s *UserService) ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.NewValidation("密码长度不能少于8位")
	}
	if len(password) > 72 {
		return errors.NewValidation("密码长度不能超过72位")
	}
	return nil
}

// ValidateCreateParams 验证创建用户的参数
func (s *UserService) ValidateCreateParams(name, email, password, roleType string) error {
	if !s.validateName(name) {
		return errors.NewValidation("姓名长度必须在2-50个字符之间")
	}
	if !s.ValidateEmail(email) {
		return errors.NewValidation("邮箱格式不正确")
	}
	if err := s.ValidatePassword(password); err != nil {
		return err
	}
	if !models.IsValidRoleType(roleType) {
		return errors.NewValidation("角色类型无效")
	}
	return nil
}

// ========== 内部方法 ==========

// emailTaken 邮箱是否被占用
//
// includeArchived=true用于创建（归档用户仍保留邮箱）；
// false用于恢复校验（只与活跃用户冲突）。
func (s *UserService) emailTaken(email string, excludeID uint, includeArchived bool) (bool, error) {
	var count int64
	query := s.db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// loadPermissions 校验权限ID都存在并加载
func (s *UserService) loadPermissions(permissionIDs []uint) ([]models.Permission, error) {
	if len(permissionIDs) == 0 {
		return []models.Permission{}, nil
	}

	var permissions []models.Permission
	if err := s.db.Where("id IN ?", permissionIDs).Find(&permissions).Error; err != nil {
		return nil, err
	}
	if len(permissions) != len(uniqueIDs(permissionIDs)) {
		return nil, errors.NewValidation("部分权限ID不存在")
	}
	return permissions, nil
}

// uniqueIDs ID去重（集合语义，重复引用视为一次）
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// checkRoleBelongs 校验角色存在且属于指定商家且未归档
func (s *UserService) checkRoleBelongs(roleID, businessID uint) error {
	var count int64
	s.db.Model(&models.Role{}).
		Where("id = ? AND business_id = ? AND is_archived = ?", roleID, businessID, false).
		Count(&count)
	if count == 0 {
		return errors.NewValidation("角色不存在或不属于该商家")
	}
	return nil
}
