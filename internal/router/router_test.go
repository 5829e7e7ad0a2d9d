package router

import (
	"testing"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"

	"github.com/stretchr/testify/assert"
)

// 路由上声明的全部权限名，与SetupRouter中的RequirePermission调用保持同步。
var routePermissionGates = []string{
	"permissions.read.all",
	"roles.create.all", "roles.read.all", "roles.update.all", "roles.delete.all",
	"users.read.all",
	"venues.create.all", "venues.read.all", "venues.update.all", "venues.delete.all",
	"partners.create.all", "partners.read.all", "partners.update.all", "partners.delete.all",
	"events.create.all", "events.read.all", "events.update.all", "events.delete.all",
	"reminders.create.all", "reminders.read.all", "reminders.update.all", "reminders.delete.all",
	"supplies.create.all", "supplies.read.all", "supplies.update.all", "supplies.delete.all",
	"invoices.create.all", "invoices.read.all", "invoices.update.all", "invoices.delete.all",
	"contracts.create.all", "contracts.read.all", "contracts.update.all", "contracts.delete.all",
	"finance.create.all", "finance.read.all", "finance.update.all", "finance.delete.all",
}

// 未知权限名对非超管永远鉴权失败，因此路由声明的每个权限名都必须
// 出现在启动种子化的权限目录中。
func TestRoutePermissionGatesAreSeeded(t *testing.T) {
	catalog := make(map[string]bool)
	for _, module := range models.CatalogModules {
		for _, action := range models.CatalogActions {
			catalog[models.PermissionName(module, action, models.ScopeAll)] = true
		}
	}

	for _, name := range routePermissionGates {
		assert.Truef(t, catalog[name], "权限名 %s 不在种子化目录中，任何角色都无法通过该网关", name)
	}
}
