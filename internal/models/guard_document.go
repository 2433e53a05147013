package models

import "time"

// GuardDocument is an identity or licence document held on file for a guard.
type GuardDocument struct {
	BaseModel

	TenantID     string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	GuardID      string     `gorm:"type:uuid;not null;index" json:"guard_id"`
	DocumentType string     `gorm:"index" json:"document_type"`
	Name         string     `json:"name"`
	Reference    string     `json:"reference"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}
