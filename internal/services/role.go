package services

import (
	goerrors "errors"
	"unicode/utf8"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"gorm.io/gorm"
)

type RoleService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewRoleService() *RoleService {
	return &RoleService{
		db:       database.GetDB(),
		activity: NewActivityLogService(),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建角色
func (s *RoleService) Create(businessID uint, name, description string, permissionIDs []uint) (*models.Role, error) {
	if err := s.validateName(name); err != nil {
		return nil, err
	}

	// 角色名在同商家的未归档角色间唯一（大小写不敏感）
	if taken, err := s.nameTaken(businessID, name, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.NewConflict("角色名称已存在")
	}

	role := &models.Role{
		BusinessID:  businessID,
		Name:        name,
		Description: description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		if len(permissionIDs) > 0 {
			permissions, err := s.loadPermissions(tx, permissionIDs)
			if err != nil {
				return err
			}
			return tx.Model(role).Association("Permissions").Replace(permissions)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

// GetByID 根据ID获取角色（租户内，归档角色仍可读取）
func (s *RoleService) GetByID(businessID, id uint) (*models.Role, error) {
	var role models.Role
	err := s.db.Where("business_id = ?", businessID).
		Preload("Permissions").
		First(&role, id).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// GetWithPage 分页获取商家角色
func (s *RoleService) GetWithPage(businessID uint, keyword string, lq ListQuery, page, pageSize int) ([]*models.Role, int64, error) {
	var roles []*models.Role
	var total int64

	query := s.db.Model(&models.Role{}).Where("business_id = ?", businessID)
	query = applyArchiveVisibility(query, lq)

	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Permissions").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

// Update 更新角色
func (s *RoleService) Update(businessID, id uint, name, description string) (*models.Role, error) {
	if err := s.validateName(name); err != nil {
		return nil, err
	}

	role, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if role.IsArchived {
		return nil, errors.ErrAlreadyArchived
	}

	if taken, err := s.nameTaken(businessID, name, id); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.NewConflict("角色名称已存在")
	}

	role.Name = name
	role.Description = description

	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// ========== 权限管理方法 ==========

// AssignPermissions 替换角色的权限集
func (s *RoleService) AssignPermissions(businessID, roleID uint, permissionIDs []uint) error {
	role, err := s.GetByID(businessID, roleID)
	if err != nil {
		return err
	}
	if role.IsArchived {
		return errors.ErrAlreadyArchived
	}

	permissions, err := s.loadPermissions(s.db, permissionIDs)
	if err != nil {
		return err
	}

	return s.db.Model(role).Association("Permissions").Replace(permissions)
}

// GetRolePermissions 获取角色的权限
func (s *RoleService) GetRolePermissions(businessID, roleID uint) ([]models.Permission, error) {
	role, err := s.GetByID(businessID, roleID)
	if err != nil {
		return nil, err
	}
	return role.Permissions, nil
}

// ========== 归档生命周期 ==========

// Archive 归档角色
//
// 角色没有归档前置条件（租户隔离之外），引用该角色的用户解析时
// 不再获得其权限。
func (s *RoleService) Archive(businessID, id, actorID uint) (*models.Role, error) {
	if err := archiveRecord(s.db, &models.Role{}, id, businessID, actorID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "role.archive", "role", id, nil)
	return s.GetByID(businessID, id)
}

// Restore 恢复角色，恢复前重新校验名称唯一性
func (s *RoleService) Restore(businessID, id, actorID uint) (*models.Role, error) {
	role, err := s.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if !role.IsArchived {
		return nil, errors.ErrNotArchived
	}

	// 名称可能已被归档后创建的活跃角色占用
	if taken, err := s.nameTaken(businessID, role.Name, id); err != nil {
		return nil, err
	} else if taken {
		return nil, errors.NewConflict("已有同名的活跃角色，无法恢复")
	}

	if err := restoreRecord(s.db, &models.Role{}, id, businessID, false); err != nil {
		return nil, err
	}

	s.activity.Record(businessID, actorID, "role.restore", "role", id, nil)
	return s.GetByID(businessID, id)
}

// ========== 内部方法 ==========

// nameTaken 名称是否被同商家其他未归档角色占用
func (s *RoleService) nameTaken(businessID uint, name string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Role{}).
		Where("business_id = ? AND LOWER(name) = LOWER(?) AND is_archived = ?", businessID, name, false)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RoleService) validateName(name string) error {
	runeCount := utf8.RuneCountInString(name)
	if runeCount < 2 || runeCount > 50 {
		return errors.NewValidation("角色名称长度必须在2-50个字符之间")
	}
	return nil
}

// loadPermissions 校验权限ID都存在并加载
func (s *RoleService) loadPermissions(tx *gorm.DB, permissionIDs []uint) ([]models.Permission, error) {
	var permissions []models.Permission
	if len(permissionIDs) == 0 {
		return permissions, nil
	}
	if err := tx.Where("id IN ?", permissionIDs).Find(&permissions).Error; err != nil {
		return nil, err
	}
	if len(permissions) != len(uniqueIDs(permissionIDs)) {
		return nil, errors.NewValidation("部分权限不存在")
	}
	return permissions, nil
}
