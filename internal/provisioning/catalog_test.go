package provisioning

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	require.Len(t, Roles, 4)
	require.Len(t, Permissions, 20)
	require.Len(t, Menus, 6)

	subMenuCount := 0
	for _, menu := range Menus {
		subMenuCount += len(menu.SubMenus)
	}
	require.Equal(t, 30, subMenuCount)
}

func TestCatalogPermissions_UniquePairs(t *testing.T) {
	seen := make(map[string]struct{}, len(Permissions))
	for _, seed := range Permissions {
		require.NotEmpty(t, seed.Resource)
		require.NotEmpty(t, seed.Action)
		key := seed.Resource + ":" + seed.Action
		_, dup := seen[key]
		require.False(t, dup, "duplicate permission %s", key)
		seen[key] = struct{}{}
	}
}

func TestCatalogMenus_UniqueCodesAndOrder(t *testing.T) {
	menuCodes := make(map[string]struct{})
	subMenuCodes := make(map[string]struct{})

	for i, menu := range Menus {
		_, dup := menuCodes[menu.Code]
		require.False(t, dup, "duplicate menu code %s", menu.Code)
		menuCodes[menu.Code] = struct{}{}
		require.Equal(t, i+1, menu.DisplayOrder)

		for j, subMenu := range menu.SubMenus {
			_, dup := subMenuCodes[subMenu.Code]
			require.False(t, dup, "duplicate submenu code %s", subMenu.Code)
			subMenuCodes[subMenu.Code] = struct{}{}
			require.Equal(t, j+1, subMenu.DisplayOrder)
			require.NotEmpty(t, subMenu.Route)
		}
	}

	require.Empty(t, Menus[0].SubMenus, "dashboard carries no submenus")
}

func TestCatalogGrants_CoverEveryRole(t *testing.T) {
	for _, seed := range Roles {
		grant, ok := Grants[seed.Code]
		require.True(t, ok, "role %s has no grant", seed.Code)

		if seed.Code == RoleAdmin {
			require.True(t, grant.AllPermissions)
			require.True(t, grant.AllMenus)
			require.True(t, grant.AllSubMenus)
			continue
		}

		// Every named menu and submenu must exist in the catalog.
		menuCodes := make(map[string]struct{}, len(Menus))
		subMenuCodes := make(map[string]struct{})
		for _, menu := range Menus {
			menuCodes[menu.Code] = struct{}{}
			for _, subMenu := range menu.SubMenus {
				subMenuCodes[subMenu.Code] = struct{}{}
			}
		}
		for _, code := range grant.Menus {
			_, ok := menuCodes[code]
			require.True(t, ok, "grant for %s names unknown menu %s", seed.Code, code)
		}
		for _, code := range grant.SubMenusOf {
			_, ok := menuCodes[code]
			require.True(t, ok, "grant for %s names unknown menu %s", seed.Code, code)
		}
		for _, code := range grant.ExtraSubMenus {
			_, ok := subMenuCodes[code]
			require.True(t, ok, "grant for %s names unknown submenu %s", seed.Code, code)
		}
	}
}
