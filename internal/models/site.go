package models

type Site struct {
	BaseModel

	TenantID    string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string `gorm:"not null" json:"name"`
	ClientName  string `json:"client_name"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
