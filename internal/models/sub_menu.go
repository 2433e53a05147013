package models

type SubMenu struct {
	BaseModel

	TenantID     string `gorm:"type:uuid;not null;index;uniqueIndex:idx_sub_menus_tenant_code" json:"tenant_id"`
	MenuID       string `gorm:"type:uuid;not null;index" json:"menu_id"`
	Code         string `gorm:"not null;uniqueIndex:idx_sub_menus_tenant_code" json:"code"`
	Name         string `gorm:"not null" json:"name"`
	Icon         string `json:"icon"`
	Route        string `json:"route"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`

	Roles []Role `gorm:"many2many:role_sub_menus;" json:"roles,omitempty"`
}
