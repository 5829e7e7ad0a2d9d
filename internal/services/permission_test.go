package services

import (
	"testing"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePermissionStore 内存实现，避免解析器测试依赖数据库
type fakePermissionStore struct {
	rolePermissions map[uint][]uint
	granted         map[uint][]uint
	revoked         map[uint][]uint
	byName          map[string]*models.Permission
}

func newFakeStore() *fakePermissionStore {
	return &fakePermissionStore{
		rolePermissions: make(map[uint][]uint),
		granted:         make(map[uint][]uint),
		revoked:         make(map[uint][]uint),
		byName:          make(map[string]*models.Permission),
	}
}

func (f *fakePermissionStore) GetRolePermissionIDs(roleID uint) ([]uint, error) {
	return f.rolePermissions[roleID], nil
}

func (f *fakePermissionStore) GetGrantedPermissionIDs(userID uint) ([]uint, error) {
	return f.granted[userID], nil
}

func (f *fakePermissionStore) GetRevokedPermissionIDs(userID uint) ([]uint, error) {
	return f.revoked[userID], nil
}

func (f *fakePermissionStore) GetPermissionByName(name string) (*models.Permission, error) {
	permission, ok := f.byName[name]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return permission, nil
}

func (f *fakePermissionStore) addPermission(id uint, name string) {
	f.byName[name] = &models.Permission{BaseModel: models.BaseModel{ID: id}, Name: name}
}

func roleUser(userID, roleID uint) *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: userID}, RoleID: &roleID}
}

func TestResolveEffectivePermissions_RoleUnionGranted(t *testing.T) {
	store := newFakeStore()
	store.rolePermissions[10] = []uint{1, 2}
	store.granted[100] = []uint{3}

	svc := NewPermissionServiceWithStore(store)
	effective, err := svc.ResolveEffectivePermissions(roleUser(100, 10))
	require.NoError(t, err)

	assert.Len(t, effective, 3)
	assert.Contains(t, effective, uint(1))
	assert.Contains(t, effective, uint(2))
	assert.Contains(t, effective, uint(3))
}

func TestResolveEffectivePermissions_RevocationDominates(t *testing.T) {
	store := newFakeStore()
	store.rolePermissions[10] = []uint{1, 2}
	store.granted[100] = []uint{2, 3}
	store.revoked[100] = []uint{2}

	svc := NewPermissionServiceWithStore(store)
	effective, err := svc.ResolveEffectivePermissions(roleUser(100, 10))
	require.NoError(t, err)

	// 2同时被角色、授予和撤销引用，撤销必须胜出
	assert.NotContains(t, effective, uint(2))
	assert.Contains(t, effective, uint(1))
	assert.Contains(t, effective, uint(3))
}

func TestResolveEffectivePermissions_RevokeNonMemberIsNoop(t *testing.T) {
	store := newFakeStore()
	store.rolePermissions[10] = []uint{1}
	store.revoked[100] = []uint{99}

	svc := NewPermissionServiceWithStore(store)
	effective, err := svc.ResolveEffectivePermissions(roleUser(100, 10))
	require.NoError(t, err)

	assert.Len(t, effective, 1)
	assert.Contains(t, effective, uint(1))
}

func TestResolveEffectivePermissions_NoRoleNoGrants(t *testing.T) {
	svc := NewPermissionServiceWithStore(newFakeStore())

	user := &models.User{BaseModel: models.BaseModel{ID: 100}}
	effective, err := svc.ResolveEffectivePermissions(user)
	require.NoError(t, err)

	assert.Empty(t, effective)
}

func TestResolveEffectivePermissions_ArchivedRoleContributesNothing(t *testing.T) {
	// 仓储约定：已归档角色返回空集，解析结果只剩自定义授予
	store := newFakeStore()
	store.granted[100] = []uint{5}

	svc := NewPermissionServiceWithStore(store)
	effective, err := svc.ResolveEffectivePermissions(roleUser(100, 42))
	require.NoError(t, err)

	assert.Len(t, effective, 1)
	assert.Contains(t, effective, uint(5))
}

func TestHasPermission_UnknownNameDenied(t *testing.T) {
	store := newFakeStore()
	store.rolePermissions[10] = []uint{1}
	store.addPermission(1, "venues.read.all")

	svc := NewPermissionServiceWithStore(store)

	ok, err := svc.HasPermission(roleUser(100, 10), "venues.fly.all")
	require.NoError(t, err)
	assert.False(t, ok, "未知权限名必须拒绝且不报错")
}

func TestHasPermission_GrantedByName(t *testing.T) {
	store := newFakeStore()
	store.rolePermissions[10] = []uint{1, 2}
	store.addPermission(1, "venues.read.all")
	store.addPermission(2, "venues.update.all")
	store.addPermission(3, "venues.delete.all")

	svc := NewPermissionServiceWithStore(store)
	user := roleUser(100, 10)

	ok, err := svc.HasPermission(user, "venues.update.all")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission(user, "venues.delete.all")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckName_ReusableAcrossNames(t *testing.T) {
	store := newFakeStore()
	store.rolePermissions[10] = []uint{1}
	store.granted[100] = []uint{2}
	store.revoked[100] = []uint{1}
	store.addPermission(1, "events.read.all")
	store.addPermission(2, "events.create.all")

	svc := NewPermissionServiceWithStore(store)
	effective, err := svc.ResolveEffectivePermissions(roleUser(100, 10))
	require.NoError(t, err)

	// 同一份生效集可对多个权限名复用
	ok, err := svc.CheckName(effective, "events.read.all")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckName(effective, "events.create.all")
	require.NoError(t, err)
	assert.True(t, ok)
}
