package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/internal/tenantctx"
)

// NavigationItem is one top-level menu with the submenus the caller may see.
type NavigationItem struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Icon         string           `json:"icon"`
	Route        string           `json:"route"`
	DisplayOrder int              `json:"display_order"`
	SubMenus     []NavigationLeaf `json:"sub_menus"`
}

// NavigationLeaf is one submenu entry.
type NavigationLeaf struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Route        string `json:"route"`
	DisplayOrder int    `json:"display_order"`
}

// NavigationService resolves the menu tree granted to the caller's roles.
type NavigationService struct {
	db *gorm.DB
}

// NewNavigationService constructs a NavigationService instance.
func NewNavigationService(db *gorm.DB) (*NavigationService, error) {
	if db == nil {
		return nil, errors.New("navigation service: db is required")
	}
	return &NavigationService{db: db}, nil
}

// TreeForCaller returns the navigation tree visible to the identity carried
// by the context, ordered by display order. Menus with no visible submenus
// still appear when granted directly (Dashboard has none by design of the
// seed catalog).
func (s *NavigationService) TreeForCaller(ctx context.Context) ([]NavigationItem, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	identity, _ := tenantctx.FromContext(ctx)

	var roles []models.Role
	if err := s.db.WithContext(ctx).
		Preload("Menus").
		Preload("SubMenus").
		Where("tenant_id = ? AND code IN ?", tenantID, identity.RoleCodes).
		Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("navigation service: load roles: %w", err)
	}

	menusByID := make(map[string]models.Menu)
	subMenusSeen := make(map[string]models.SubMenu)
	for _, role := range roles {
		for _, menu := range role.Menus {
			menusByID[menu.ID] = menu
		}
		for _, subMenu := range role.SubMenus {
			subMenusSeen[subMenu.ID] = subMenu
		}
	}

	items := make([]NavigationItem, 0, len(menusByID))
	for _, menu := range menusByID {
		item := NavigationItem{
			Code:         menu.Code,
			Name:         menu.Name,
			Icon:         menu.Icon,
			Route:        menu.Route,
			DisplayOrder: menu.DisplayOrder,
			SubMenus:     []NavigationLeaf{},
		}
		for _, subMenu := range subMenusSeen {
			if subMenu.MenuID != menu.ID {
				continue
			}
			item.SubMenus = append(item.SubMenus, NavigationLeaf{
				Code:         subMenu.Code,
				Name:         subMenu.Name,
				Icon:         subMenu.Icon,
				Route:        subMenu.Route,
				DisplayOrder: subMenu.DisplayOrder,
			})
		}
		sort.Slice(item.SubMenus, func(i, j int) bool {
			return item.SubMenus[i].DisplayOrder < item.SubMenus[j].DisplayOrder
		})
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].DisplayOrder < items[j].DisplayOrder
	})

	return items, nil
}
