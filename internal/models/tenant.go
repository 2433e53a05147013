package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tenant represents a single security agency with its own isolated data scope.
type Tenant struct {
	BaseModel

	CompanyName        string `gorm:"not null" json:"company_name"`
	RegistrationNumber string `gorm:"uniqueIndex;not null" json:"registration_number"`
	Email              string `gorm:"uniqueIndex;not null" json:"email"`
	Phone              string `json:"phone"`

	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`

	SubscriptionStart time.Time `json:"subscription_start"`
	SubscriptionEnd   time.Time `json:"subscription_end"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`

	Settings datatypes.JSON `json:"settings"`

	Users []User `gorm:"foreignKey:TenantID" json:"users,omitempty"`
	Roles []Role `gorm:"foreignKey:TenantID" json:"roles,omitempty"`
}
