package middleware

import (
	"strings"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/jwt"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

const effectivePermissionsKey = "effective_permissions"

// AuthMiddleware 权限中间件
type AuthMiddleware struct {
	userService       *services.UserService
	permissionService *services.PermissionService
	jwtManager        *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService:       services.NewUserService(),
		permissionService: services.NewPermissionService(),
		jwtManager:        jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// RequireLogin 要求已登录
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		tokenString := authHeader[7:] // 去掉 "Bearer "

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 获取用户信息
		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		// 检查用户状态：归档或禁用的用户不能再使用旧token
		if user.IsArchived || !user.IsActive {
			response.Unauthorized(c, "用户已被禁用")
			c.Abort()
			return
		}

		// 将用户信息保存到上下文
		c.Set("user", user)
		c.Set("user_id", user.ID)
		if user.BusinessID != nil {
			c.Set("business_id", *user.BusinessID)
		} else {
			c.Set("business_id", uint(0))
		}
		c.Set("is_super_admin", user.IsSuperAdmin)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequirePermission 要求特定权限
//
// 本次请求首次检查时解析一次有效权限集并缓存在gin上下文，
// 同一请求后续检查直接复用。
func (m *AuthMiddleware) RequirePermission(permissionName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 超级管理员跳过权限检查
		if user.IsSuperAdmin {
			c.Next()
			return
		}

		effective, err := m.effectiveSet(c, user)
		if err != nil {
			response.ServerError(c, "权限检查失败")
			c.Abort()
			return
		}

		ok, err := m.permissionService.CheckName(effective, permissionName)
		if err != nil {
			response.ServerError(c, "权限检查失败")
			c.Abort()
			return
		}
		if !ok {
			response.Forbidden(c, "权限不足：需要 "+permissionName+" 权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRoleType 要求特定角色类型（粗粒度检查）
func (m *AuthMiddleware) RequireRoleType(roleTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if user.IsSuperAdmin {
			c.Next()
			return
		}

		for _, rt := range roleTypes {
			if user.RoleType == rt {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "权限不足：角色类型不满足要求")
		c.Abort()
	}
}

// RequireSuperAdmin 要求超级管理员
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !user.IsSuperAdmin {
			response.Forbidden(c, "仅超级管理员可操作")
			c.Abort()
			return
		}

		c.Next()
	}
}

// effectiveSet 获取本次请求缓存的有效权限集，首次调用时解析
func (m *AuthMiddleware) effectiveSet(c *gin.Context, user *models.User) (map[uint]struct{}, error) {
	if cached, exists := c.Get(effectivePermissionsKey); exists {
		return cached.(map[uint]struct{}), nil
	}

	effective, err := m.permissionService.ResolveEffectivePermissions(user)
	if err != nil {
		return nil, err
	}

	c.Set(effectivePermissionsKey, effective)
	return effective, nil
}

// CurrentUser 从上下文取当前登录用户，未登录返回nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentBusinessID 从上下文取当前商家ID，平台用户为0
func CurrentBusinessID(c *gin.Context) uint {
	value, exists := c.Get("business_id")
	if !exists {
		return 0
	}
	id, _ := value.(uint)
	return id
}

// CurrentUserID 从上下文取当前用户ID
func CurrentUserID(c *gin.Context) uint {
	value, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	id, _ := value.(uint)
	return id
}
