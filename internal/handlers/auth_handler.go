package handlers

import (
	"strings"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/jwt"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/logger"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessID   uint   `json:"business_id"`
	RoleType     string `json:"role_type"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 根据邮箱获取用户
	user, err := h.userService.GetByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 检查用户状态
	if user.IsArchived || !user.IsActive {
		response.Unauthorized(c, "用户已被禁用")
		return
	}

	// 验证密码
	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	var businessID uint
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}

	// 生成Token
	token, err := h.jwtManager.GenerateToken(
		user.ID,
		businessID,
		user.Email,
		user.RoleType,
		user.IsSuperAdmin,
	)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	// 更新最后登录时间，失败不影响登录流程
	if err := h.userService.UpdateLastLogin(user.ID); err != nil {
		logger.GetLogger().Warnf("更新最后登录时间失败: user=%d, err=%v", user.ID, err)
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserInfo{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			BusinessID:   businessID,
			RoleType:     user.RoleType,
			IsSuperAdmin: user.IsSuperAdmin,
		},
	})
}

// RefreshToken 刷新令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "认证头格式错误")
		return
	}

	token, err := h.jwtManager.RefreshToken(authHeader[7:])
	if err != nil {
		response.Unauthorized(c, "Token无效或已过期")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}

// GetProfile 获取当前登录用户信息
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	var businessID uint
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}

	response.Success(c, UserInfo{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		BusinessID:   businessID,
		RoleType:     user.RoleType,
		IsSuperAdmin: user.IsSuperAdmin,
	})
}
