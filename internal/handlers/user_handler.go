package handlers

import (
	"fmt"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler 用户处理器
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	RoleType string `json:"role_type" binding:"required"`
	RoleID   *uint  `json:"role_id"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	RoleType string `json:"role_type" binding:"required"`
	RoleID   *uint  `json:"role_id"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

type CustomPermissionsRequest struct {
	GrantedIDs []uint `json:"granted_ids"`
	RevokedIDs []uint `json:"revoked_ids"`
}

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 解析验证错误，提供更友好的提示
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErr {
				switch fieldErr.Field() {
				case "Email":
					response.BadRequest(c, "邮箱格式不正确")
				case "Password":
					response.BadRequest(c, "密码长度必须在8-72个字符之间")
				default:
					response.BadRequest(c, fmt.Sprintf("字段 %s 验证失败", fieldErr.Field()))
				}
				return // 只返回第一个错误
			}
		}
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	businessID := middleware.CurrentBusinessID(c)
	user, err := h.userService.Create(&businessID, req.Name, req.Email, req.Password, req.RoleType, req.RoleID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// List 分页获取用户列表
func (h *UserHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	users, total, err := h.userService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("role_type"), c.Query("keyword"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, users, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取用户详情
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	user, err := h.userService.GetScoped(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Update(middleware.CurrentBusinessID(c), id, req.Name, req.RoleType, req.RoleID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// ResetPassword 重置用户密码
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.userService.ResetPassword(middleware.CurrentBusinessID(c), id, req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "密码重置成功", nil)
}

// SetCustomPermissions 替换用户的独立授予和撤销权限
func (h *UserHandler) SetCustomPermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req CustomPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	err := h.userService.SetCustomPermissions(
		middleware.CurrentBusinessID(c), id, req.GrantedIDs, req.RevokedIDs, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "自定义权限设置成功", nil)
}

// GetEffectivePermissions 获取用户的有效权限列表
func (h *UserHandler) GetEffectivePermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	user, err := h.userService.GetScoped(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	permissions, err := h.userService.GetEffectivePermissions(user)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, permissions)
}

// Archive 归档用户
func (h *UserHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	user, err := h.userService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// Restore 恢复用户
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	user, err := h.userService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}
