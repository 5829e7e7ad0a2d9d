package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore 中间件测试用的内存权限仓储
type memoryStore struct {
	rolePermissions map[uint][]uint
	byName          map[string]*models.Permission
}

func (m *memoryStore) GetRolePermissionIDs(roleID uint) ([]uint, error) {
	return m.rolePermissions[roleID], nil
}

func (m *memoryStore) GetGrantedPermissionIDs(userID uint) ([]uint, error) { return nil, nil }

func (m *memoryStore) GetRevokedPermissionIDs(userID uint) ([]uint, error) { return nil, nil }

func (m *memoryStore) GetPermissionByName(name string) (*models.Permission, error) {
	permission, ok := m.byName[name]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return permission, nil
}

func testAuthMiddleware() *AuthMiddleware {
	store := &memoryStore{
		rolePermissions: map[uint][]uint{
			10: {1},
		},
		byName: map[string]*models.Permission{
			"venues.read.all":   {BaseModel: models.BaseModel{ID: 1}, Name: "venues.read.all"},
			"venues.delete.all": {BaseModel: models.BaseModel{ID: 2}, Name: "venues.delete.all"},
		},
	}
	return &AuthMiddleware{
		permissionService: services.NewPermissionServiceWithStore(store),
	}
}

// injectUser 跳过JWT校验直接注入登录态，只测授权逻辑
func injectUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func performRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)
	return w
}

func envelopeCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 200})
}

func staffWithRole(roleID uint) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: 100},
		RoleType:  models.RoleTypeStaff,
		RoleID:    &roleID,
	}
}

func TestRequirePermission_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	router := gin.New()
	router.GET("/probe", auth.RequirePermission("venues.read.all"), okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeUnauthorized, envelopeCode(t, w))
}

func TestRequirePermission_Granted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	router := gin.New()
	router.GET("/probe", injectUser(staffWithRole(10)), auth.RequirePermission("venues.read.all"), okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeSuccess, envelopeCode(t, w))
}

func TestRequirePermission_Insufficient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	router := gin.New()
	router.GET("/probe", injectUser(staffWithRole(10)), auth.RequirePermission("venues.delete.all"), okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeForbidden, envelopeCode(t, w))
}

func TestRequirePermission_UnknownNameDenied(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	router := gin.New()
	router.GET("/probe", injectUser(staffWithRole(10)), auth.RequirePermission("venues.fly.all"), okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeForbidden, envelopeCode(t, w))
}

func TestRequirePermission_SuperAdminBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	admin := &models.User{BaseModel: models.BaseModel{ID: 1}, IsSuperAdmin: true}

	router := gin.New()
	// 超级管理员即使对未知权限名也直接放行
	router.GET("/probe", injectUser(admin), auth.RequirePermission("nonexistent.thing.all"), okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeSuccess, envelopeCode(t, w))
}

func TestRequirePermission_EffectiveSetCachedPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	// 同一请求连续两个权限检查，第二个应复用缓存的生效集
	router := gin.New()
	router.GET("/probe",
		injectUser(staffWithRole(10)),
		auth.RequirePermission("venues.read.all"),
		auth.RequirePermission("venues.read.all"),
		okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeSuccess, envelopeCode(t, w))
}

func TestRequireRoleType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	owner := &models.User{BaseModel: models.BaseModel{ID: 2}, RoleType: models.RoleTypeOwner}
	staff := &models.User{BaseModel: models.BaseModel{ID: 3}, RoleType: models.RoleTypeStaff}

	ownerRouter := gin.New()
	ownerRouter.GET("/probe", injectUser(owner), auth.RequireRoleType("owner", "manager"), okHandler)
	assert.Equal(t, errors.CodeSuccess, envelopeCode(t, performRequest(ownerRouter)))

	staffRouter := gin.New()
	staffRouter.GET("/probe", injectUser(staff), auth.RequireRoleType("owner", "manager"), okHandler)
	assert.Equal(t, errors.CodeForbidden, envelopeCode(t, performRequest(staffRouter)))
}

func TestRequireSuperAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthMiddleware()

	regular := &models.User{BaseModel: models.BaseModel{ID: 4}, RoleType: models.RoleTypeOwner}

	router := gin.New()
	router.GET("/probe", injectUser(regular), auth.RequireSuperAdmin(), okHandler)

	w := performRequest(router)
	assert.Equal(t, errors.CodeForbidden, envelopeCode(t, w))
}
