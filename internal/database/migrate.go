package database

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Permission{},
		&models.Role{},
		&models.RolePermission{},
		&models.UserGrantedPermission{},
		&models.UserRevokedPermission{},
		&models.Venue{},
		&models.Partner{},
		&models.Event{},
		&models.Reminder{},
		&models.Supply{},
		&models.Invoice{},
		&models.Contract{},
		&models.FinanceRecord{},
		&models.ActivityLog{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	// 种子数据初始化在 main.go 中单独调用，避免循环依赖

	return nil
}
