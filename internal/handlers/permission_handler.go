package handlers

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// PermissionHandler 权限目录处理器
type PermissionHandler struct {
	permissionService *services.PermissionService
}

func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

type CreatePermissionRequest struct {
	Module      string `json:"module" binding:"required"`
	Action      string `json:"action" binding:"required"`
	Scope       string `json:"scope" binding:"required"`
	DisplayName string `json:"display_name"`
}

// List 分页获取权限目录
func (h *PermissionHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	permissions, total, err := h.permissionService.GetWithPage(
		c.Query("module"), c.Query("scope"), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, permissions, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取权限详情
func (h *PermissionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	permission, err := h.permissionService.GetByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, permission)
}

// Create 创建权限定义（仅超级管理员路由挂载）
func (h *PermissionHandler) Create(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	permission, err := h.permissionService.Create(req.Module, req.Action, req.Scope, req.DisplayName)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, permission)
}
