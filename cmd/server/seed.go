package main

import (
	goerrors "errors"
	"fmt"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建默认商家
	business, err := createDefaultBusiness(db)
	if err != nil {
		return fmt.Errorf("创建默认商家失败: %v", err)
	}

	// 2. 初始化权限目录
	if err := initializePermissions(db); err != nil {
		return fmt.Errorf("初始化权限目录失败: %v", err)
	}

	// 3. 创建默认owner角色
	role, err := createOwnerRole(db, business.ID)
	if err != nil {
		return fmt.Errorf("创建owner角色失败: %v", err)
	}

	// 4. 创建默认超级管理员
	if err := createDefaultAdmin(db, business.ID, role.ID); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultBusiness 创建默认商家
func createDefaultBusiness(db *gorm.DB) (*models.Business, error) {
	var business models.Business
	err := db.Where("email = ?", "hq@fiesta.local").First(&business).Error
	if err == nil {
		logger.GetLogger().Info("默认商家已存在，跳过创建")
		return &business, nil
	}
	if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		// 瞬时查询错误不能当成"不存在"，否则重试时会重复播种
		return nil, err
	}

	business = models.Business{
		Name:     "Fiesta总部",
		Email:    "hq@fiesta.local",
		IsActive: true,
	}

	if err := db.Create(&business).Error; err != nil {
		return nil, err
	}

	logger.GetLogger().Info("默认商家创建成功")
	return &business, nil
}

// initializePermissions 初始化全模块权限目录
//
// 每个业务模块生成 create/read/update/delete × all 的基本组合，
// 已存在的权限跳过，不覆盖人工调整。
func initializePermissions(db *gorm.DB) error {
	created := 0
	for _, module := range models.CatalogModules {
		for _, action := range models.CatalogActions {
			name := models.PermissionName(module, action, models.ScopeAll)

			var count int64
			db.Model(&models.Permission{}).Where("name = ?", name).Count(&count)
			if count > 0 {
				continue
			}

			permission := &models.Permission{
				Name:        name,
				Module:      module,
				Action:      action,
				Scope:       models.ScopeAll,
				DisplayName: fmt.Sprintf("%s %s", module, action),
				IsActive:    true,
			}
			if err := db.Create(permission).Error; err != nil {
				return err
			}
			created++
		}
	}

	if created > 0 {
		logger.GetLogger().Infof("权限目录初始化完成，新增%d条", created)
	}
	return nil
}

// createOwnerRole 创建拥有全部权限的owner角色
func createOwnerRole(db *gorm.DB, businessID uint) (*models.Role, error) {
	var role models.Role
	err := db.Where("business_id = ? AND name = ?", businessID, "Owner").First(&role).Error
	if err == nil {
		logger.GetLogger().Info("Owner角色已存在，跳过创建")
		return &role, nil
	}
	if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var permissions []models.Permission
	if err := db.Find(&permissions).Error; err != nil {
		return nil, err
	}

	role = models.Role{
		BusinessID:  businessID,
		Name:        "Owner",
		Description: "商家拥有者，具备全部权限",
		Permissions: permissions,
	}

	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Owner角色创建成功")
	return &role, nil
}

// createDefaultAdmin 创建默认超级管理员
func createDefaultAdmin(db *gorm.DB, businessID, roleID uint) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@fiesta.local").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("默认管理员已存在，跳过创建")
		return nil
	}

	admin := &models.User{
		BusinessID:   &businessID,
		Name:         "Admin",
		Email:        "admin@fiesta.local",
		RoleID:       &roleID,
		RoleType:     models.RoleTypeOwner,
		IsSuperAdmin: true,
		IsActive:     true,
	}
	if err := admin.SetPassword("Admin@123456"); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Warn("默认管理员创建成功（admin@fiesta.local），请尽快修改初始密码")
	return nil
}
