package models

import "time"

// TrainingRecord captures a completed training for a guard. ExpiryDate is
// optional; records without one never expire.
type TrainingRecord struct {
	BaseModel

	TenantID     string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	GuardID      string     `gorm:"type:uuid;not null;index" json:"guard_id"`
	TrainingType string     `gorm:"index" json:"training_type"`
	TrainingName string     `json:"training_name"`
	CompletedAt  *time.Time `json:"completed_at"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
}
