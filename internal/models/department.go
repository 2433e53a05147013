package models

type Department struct {
	BaseModel

	TenantID    string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsDefault   bool   `gorm:"default:false" json:"is_default"`

	Users []User `gorm:"foreignKey:DepartmentID" json:"users,omitempty"`
}
