package models

// Menu is a top-level navigation entry. Every tenant receives its own copy of
// the fixed menu tree during provisioning.
type Menu struct {
	BaseModel

	TenantID     string `gorm:"type:uuid;not null;index;uniqueIndex:idx_menus_tenant_code" json:"tenant_id"`
	Code         string `gorm:"not null;uniqueIndex:idx_menus_tenant_code" json:"code"`
	Name         string `gorm:"not null" json:"name"`
	Icon         string `json:"icon"`
	Route        string `json:"route"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`

	SubMenus []SubMenu `gorm:"foreignKey:MenuID" json:"sub_menus,omitempty"`
	Roles    []Role    `gorm:"many2many:role_menus;" json:"roles,omitempty"`
}
