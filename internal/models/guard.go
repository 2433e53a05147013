package models

import "time"

// Guard is a tenant-scoped security guard record, optionally linked to the
// supervisor responsible for the guard.
type Guard struct {
	BaseModel

	TenantID     string  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	EmployeeCode string  `gorm:"not null;index" json:"employee_code"`
	FirstName    string  `gorm:"not null" json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        string  `json:"phone"`
	SupervisorID *string `gorm:"type:uuid;index" json:"supervisor_id"`

	HourlyRate float64    `gorm:"default:0" json:"hourly_rate"`
	JoinedAt   *time.Time `json:"joined_at"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`

	TrainingRecords []TrainingRecord `gorm:"foreignKey:GuardID" json:"training_records,omitempty"`
	Documents       []GuardDocument  `gorm:"foreignKey:GuardID" json:"documents,omitempty"`
}
