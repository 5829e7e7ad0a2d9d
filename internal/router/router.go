package router

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/database"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/handlers"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/notifier"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter(hub *notifier.Hub) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router, hub)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, hub *notifier.Hub) {

	auth := middleware.NewAuthMiddleware()

	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// JWT认证路由（登录和刷新无需认证）
		authHandler := handlers.NewAuthHandler(services.NewUserService())
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.GetProfile)
		}

		// WebSocket通知推送
		if hub != nil {
			api.GET("/ws", hub.Serve)
		}

		// 商家路由（仅超级管理员）
		businessHandler := handlers.NewBusinessHandler(services.NewBusinessService())
		businesses := api.Group("/businesses", auth.RequireLogin(), auth.RequireSuperAdmin())
		{
			businesses.POST("", businessHandler.Create)
			businesses.GET("", businessHandler.List)
			businesses.GET("/:id", businessHandler.GetByID)
			businesses.PUT("/:id", businessHandler.Update)
			businesses.POST("/:id/archive", businessHandler.Archive)
			businesses.POST("/:id/restore", businessHandler.Restore)
		}

		// 权限目录路由
		permissionHandler := handlers.NewPermissionHandler(services.NewPermissionService())
		permissions := api.Group("/permissions", auth.RequireLogin())
		{
			permissions.GET("", auth.RequirePermission("permissions.read.all"), permissionHandler.List)
			permissions.GET("/:id", auth.RequirePermission("permissions.read.all"), permissionHandler.GetByID)
			permissions.POST("", auth.RequireSuperAdmin(), permissionHandler.Create)
		}

		// 角色路由
		roleHandler := handlers.NewRoleHandler(services.NewRoleService())
		roles := api.Group("/roles", auth.RequireLogin())
		{
			roles.POST("", auth.RequirePermission("roles.create.all"), roleHandler.Create)
			roles.GET("", auth.RequirePermission("roles.read.all"), roleHandler.List)
			roles.GET("/:id", auth.RequirePermission("roles.read.all"), roleHandler.GetByID)
			roles.PUT("/:id", auth.RequirePermission("roles.update.all"), roleHandler.Update)
			roles.PUT("/:id/permissions", auth.RequirePermission("roles.update.all"), roleHandler.AssignPermissions)
			roles.GET("/:id/permissions", auth.RequirePermission("roles.read.all"), roleHandler.GetPermissions)
			roles.POST("/:id/archive", auth.RequirePermission("roles.delete.all"), roleHandler.Archive)
			roles.POST("/:id/restore", auth.RequirePermission("roles.delete.all"), roleHandler.Restore)
		}

		// 用户路由（敏感操作要求owner或manager角色类型）
		userHandler := handlers.NewUserHandler(services.NewUserService())
		users := api.Group("/users", auth.RequireLogin())
		{
			users.POST("", auth.RequireRoleType("owner", "manager"), userHandler.Create)
			users.GET("", auth.RequirePermission("users.read.all"), userHandler.List)
			users.GET("/:id", auth.RequirePermission("users.read.all"), userHandler.GetByID)
			users.PUT("/:id", auth.RequireRoleType("owner", "manager"), userHandler.Update)
			users.POST("/:id/reset-password", auth.RequireRoleType("owner", "manager"), userHandler.ResetPassword)
			users.PUT("/:id/custom-permissions", auth.RequireRoleType("owner", "manager"), userHandler.SetCustomPermissions)
			users.GET("/:id/effective-permissions", auth.RequirePermission("users.read.all"), userHandler.GetEffectivePermissions)
			users.POST("/:id/archive", auth.RequireRoleType("owner", "manager"), userHandler.Archive)
			users.POST("/:id/restore", auth.RequireRoleType("owner", "manager"), userHandler.Restore)
		}

		// 场地路由
		venueHandler := handlers.NewVenueHandler(services.NewVenueService())
		venues := api.Group("/venues", auth.RequireLogin())
		{
			venues.POST("", auth.RequirePermission("venues.create.all"), venueHandler.Create)
			venues.GET("", auth.RequirePermission("venues.read.all"), venueHandler.List)
			venues.GET("/:id", auth.RequirePermission("venues.read.all"), venueHandler.GetByID)
			venues.PUT("/:id", auth.RequirePermission("venues.update.all"), venueHandler.Update)
			venues.POST("/:id/archive", auth.RequirePermission("venues.delete.all"), venueHandler.Archive)
			venues.POST("/:id/restore", auth.RequirePermission("venues.delete.all"), venueHandler.Restore)
		}

		// 伙伴路由
		partnerHandler := handlers.NewPartnerHandler(services.NewPartnerService())
		partners := api.Group("/partners", auth.RequireLogin())
		{
			partners.POST("", auth.RequirePermission("partners.create.all"), partnerHandler.Create)
			partners.GET("", auth.RequirePermission("partners.read.all"), partnerHandler.List)
			partners.GET("/:id", auth.RequirePermission("partners.read.all"), partnerHandler.GetByID)
			partners.PUT("/:id", auth.RequirePermission("partners.update.all"), partnerHandler.Update)
			partners.DELETE("/:id", auth.RequirePermission("partners.delete.all"), partnerHandler.Delete)
			partners.POST("/:id/archive", auth.RequirePermission("partners.delete.all"), partnerHandler.Archive)
			partners.POST("/:id/restore", auth.RequirePermission("partners.delete.all"), partnerHandler.Restore)
		}

		// 活动路由
		eventHandler := handlers.NewEventHandler(services.NewEventService())
		events := api.Group("/events", auth.RequireLogin())
		{
			events.POST("", auth.RequirePermission("events.create.all"), eventHandler.Create)
			events.GET("", auth.RequirePermission("events.read.all"), eventHandler.List)
			events.GET("/:id", auth.RequirePermission("events.read.all"), eventHandler.GetByID)
			events.PUT("/:id", auth.RequirePermission("events.update.all"), eventHandler.Update)
			events.PUT("/:id/status", auth.RequirePermission("events.update.all"), eventHandler.UpdateStatus)
			events.POST("/:id/archive", auth.RequirePermission("events.delete.all"), eventHandler.Archive)
			events.POST("/:id/restore", auth.RequirePermission("events.delete.all"), eventHandler.Restore)
		}

		// 提醒路由
		reminderHandler := handlers.NewReminderHandler(services.NewReminderService())
		reminders := api.Group("/reminders", auth.RequireLogin())
		{
			reminders.POST("", auth.RequirePermission("reminders.create.all"), reminderHandler.Create)
			reminders.GET("", auth.RequirePermission("reminders.read.all"), reminderHandler.List)
			reminders.GET("/:id", auth.RequirePermission("reminders.read.all"), reminderHandler.GetByID)
			reminders.PUT("/:id", auth.RequirePermission("reminders.update.all"), reminderHandler.Update)
			reminders.POST("/:id/complete", auth.RequirePermission("reminders.update.all"), reminderHandler.Complete)
			reminders.POST("/:id/snooze", auth.RequirePermission("reminders.update.all"), reminderHandler.Snooze)
			reminders.POST("/:id/cancel", auth.RequirePermission("reminders.update.all"), reminderHandler.Cancel)
			reminders.POST("/:id/archive", auth.RequirePermission("reminders.delete.all"), reminderHandler.Archive)
			reminders.POST("/:id/restore", auth.RequirePermission("reminders.delete.all"), reminderHandler.Restore)
		}

		// 物料路由
		supplyHandler := handlers.NewSupplyHandler(services.NewSupplyService())
		supplies := api.Group("/supplies", auth.RequireLogin())
		{
			supplies.POST("", auth.RequirePermission("supplies.create.all"), supplyHandler.Create)
			supplies.GET("", auth.RequirePermission("supplies.read.all"), supplyHandler.List)
			supplies.GET("/:id", auth.RequirePermission("supplies.read.all"), supplyHandler.GetByID)
			supplies.PUT("/:id", auth.RequirePermission("supplies.update.all"), supplyHandler.Update)
			supplies.POST("/:id/adjust", auth.RequirePermission("supplies.update.all"), supplyHandler.AdjustQuantity)
			supplies.POST("/:id/archive", auth.RequirePermission("supplies.delete.all"), supplyHandler.Archive)
			supplies.POST("/:id/restore", auth.RequirePermission("supplies.delete.all"), supplyHandler.Restore)
		}

		// 发票路由
		invoiceHandler := handlers.NewInvoiceHandler(services.NewInvoiceService())
		invoices := api.Group("/invoices", auth.RequireLogin())
		{
			invoices.POST("", auth.RequirePermission("invoices.create.all"), invoiceHandler.Create)
			invoices.GET("", auth.RequirePermission("invoices.read.all"), invoiceHandler.List)
			invoices.GET("/:id", auth.RequirePermission("invoices.read.all"), invoiceHandler.GetByID)
			invoices.PUT("/:id/status", auth.RequirePermission("invoices.update.all"), invoiceHandler.UpdateStatus)
			invoices.POST("/:id/archive", auth.RequirePermission("invoices.delete.all"), invoiceHandler.Archive)
			invoices.POST("/:id/restore", auth.RequirePermission("invoices.delete.all"), invoiceHandler.Restore)
		}

		// 合同路由
		contractHandler := handlers.NewContractHandler(services.NewContractService())
		contracts := api.Group("/contracts", auth.RequireLogin())
		{
			contracts.POST("", auth.RequirePermission("contracts.create.all"), contractHandler.Create)
			contracts.GET("", auth.RequirePermission("contracts.read.all"), contractHandler.List)
			contracts.GET("/:id", auth.RequirePermission("contracts.read.all"), contractHandler.GetByID)
			contracts.PUT("/:id/status", auth.RequirePermission("contracts.update.all"), contractHandler.UpdateStatus)
			contracts.POST("/:id/archive", auth.RequirePermission("contracts.delete.all"), contractHandler.Archive)
			contracts.POST("/:id/restore", auth.RequirePermission("contracts.delete.all"), contractHandler.Restore)
		}

		// 财务流水路由
		financeHandler := handlers.NewFinanceHandler(services.NewFinanceService())
		finance := api.Group("/finance", auth.RequireLogin())
		{
			finance.POST("", auth.RequirePermission("finance.create.all"), financeHandler.Create)
			finance.GET("", auth.RequirePermission("finance.read.all"), financeHandler.List)
			finance.GET("/summary", auth.RequirePermission("finance.read.all"), financeHandler.Summary)
			finance.GET("/:id", auth.RequirePermission("finance.read.all"), financeHandler.GetByID)
			finance.PUT("/:id", auth.RequirePermission("finance.update.all"), financeHandler.Update)
			finance.POST("/:id/archive", auth.RequirePermission("finance.delete.all"), financeHandler.Archive)
			finance.POST("/:id/restore", auth.RequirePermission("finance.delete.all"), financeHandler.Restore)
		}

		// 审计日志路由
		activityHandler := handlers.NewActivityLogHandler(services.NewActivityLogService())
		api.GET("/activity-logs", auth.RequireLogin(), auth.RequireRoleType("owner", "manager"), activityHandler.List)
	}
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	db := database.GetDB()
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		response.ServerError(c, "数据库连接异常")
		return
	}

	response.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ping 存活探测
func ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
