package models

import "time"

type VehicleLog struct {
	BaseModel

	TenantID    string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SiteID      string     `gorm:"type:uuid;not null;index" json:"site_id"`
	PlateNumber string     `gorm:"not null;index" json:"plate_number"`
	VehicleType string     `json:"vehicle_type"`
	DriverName  string     `json:"driver_name"`
	EntryAt     time.Time  `gorm:"not null" json:"entry_at"`
	ExitAt      *time.Time `json:"exit_at"`
}
