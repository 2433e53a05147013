package models

// Permission is a global resource/action pair shared by every tenant.
// The catalog is seeded once system-wide during the first agency registration.
type Permission struct {
	BaseModel

	Resource    string `gorm:"not null;index;uniqueIndex:idx_permissions_resource_action" json:"resource"`
	Action      string `gorm:"not null;uniqueIndex:idx_permissions_resource_action" json:"action"`
	Description string `json:"description"`

	Roles []Role `gorm:"many2many:role_permissions;" json:"roles,omitempty"`
}
