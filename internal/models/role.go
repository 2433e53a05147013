package models

// Role is a named permission bundle scoped to a tenant. The four platform
// roles (ADMIN, GUARD, SUPERVISOR, ACCOUNTS) are created during provisioning
// and flagged as system roles.
type Role struct {
	BaseModel

	TenantID    string `gorm:"type:uuid;not null;index;uniqueIndex:idx_roles_tenant_code" json:"tenant_id"`
	Code        string `gorm:"not null;uniqueIndex:idx_roles_tenant_code" json:"code"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsSystem    bool   `gorm:"default:false" json:"is_system"`

	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	Menus       []Menu       `gorm:"many2many:role_menus;" json:"menus,omitempty"`
	SubMenus    []SubMenu    `gorm:"many2many:role_sub_menus;" json:"sub_menus,omitempty"`
	Users       []User       `gorm:"many2many:user_roles;" json:"users,omitempty"`
}
