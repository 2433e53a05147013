package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/internal/tenantctx"
)

func seedNavigation(t *testing.T, db *gorm.DB, tenantID string) (models.Menu, models.Menu, []models.SubMenu) {
	t.Helper()

	dashboard := models.Menu{TenantID: tenantID, Code: "DASHBOARD", Name: "Dashboard", DisplayOrder: 1}
	operations := models.Menu{TenantID: tenantID, Code: "OPERATIONS", Name: "Operations", DisplayOrder: 2}
	require.NoError(t, db.Create(&dashboard).Error)
	require.NoError(t, db.Create(&operations).Error)

	subMenus := []models.SubMenu{
		{TenantID: tenantID, MenuID: operations.ID, Code: "SITES", Name: "Sites", DisplayOrder: 2},
		{TenantID: tenantID, MenuID: operations.ID, Code: "ATTENDANCE", Name: "Attendance", DisplayOrder: 1},
	}
	require.NoError(t, db.Create(&subMenus).Error)

	return dashboard, operations, subMenus
}

func TestNavigationTreeForCaller(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewNavigationService(db)
	require.NoError(t, err)

	dashboard, operations, subMenus := seedNavigation(t, db, "tenant-1")

	role := models.Role{TenantID: "tenant-1", Code: "SUPERVISOR", Name: "Supervisor", IsSystem: true}
	require.NoError(t, db.Create(&role).Error)
	require.NoError(t, db.Model(&role).Association("Menus").Append(&dashboard, &operations))
	require.NoError(t, db.Model(&role).Association("SubMenus").Append(&subMenus[0], &subMenus[1]))

	ctx := tenantctx.WithIdentity(context.Background(), tenantctx.Identity{
		TenantID:  "tenant-1",
		RoleCodes: []string{"SUPERVISOR"},
	})

	tree, err := svc.TreeForCaller(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	// Menus ordered by display order; Dashboard has no submenus.
	require.Equal(t, "DASHBOARD", tree[0].Code)
	require.Empty(t, tree[0].SubMenus)

	require.Equal(t, "OPERATIONS", tree[1].Code)
	require.Len(t, tree[1].SubMenus, 2)
	require.Equal(t, "ATTENDANCE", tree[1].SubMenus[0].Code)
	require.Equal(t, "SITES", tree[1].SubMenus[1].Code)
}

func TestNavigationTreeForCaller_LimitedRole(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewNavigationService(db)
	require.NoError(t, err)

	dashboard, operations, subMenus := seedNavigation(t, db, "tenant-1")

	full := models.Role{TenantID: "tenant-1", Code: "ADMIN", Name: "Administrator", IsSystem: true}
	limited := models.Role{TenantID: "tenant-1", Code: "ACCOUNTS", Name: "Accounts", IsSystem: true}
	require.NoError(t, db.Create(&full).Error)
	require.NoError(t, db.Create(&limited).Error)

	require.NoError(t, db.Model(&full).Association("Menus").Append(&dashboard, &operations))
	require.NoError(t, db.Model(&full).Association("SubMenus").Append(&subMenus[0], &subMenus[1]))
	require.NoError(t, db.Model(&limited).Association("Menus").Append(&dashboard))

	ctx := tenantctx.WithIdentity(context.Background(), tenantctx.Identity{
		TenantID:  "tenant-1",
		RoleCodes: []string{"ACCOUNTS"},
	})

	tree, err := svc.TreeForCaller(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, "DASHBOARD", tree[0].Code)
}

func TestNavigationTreeForCaller_NoRoles(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewNavigationService(db)
	require.NoError(t, err)

	ctx := tenantctx.WithIdentity(context.Background(), tenantctx.Identity{TenantID: "tenant-1"})

	tree, err := svc.TreeForCaller(ctx)
	require.NoError(t, err)
	require.Empty(t, tree)
}
