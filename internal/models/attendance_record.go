package models

import "time"

// AttendanceRecord is one guard shift at a site. CheckOutAt is nil while the
// shift is still open; AutoClosed marks records closed by the maintenance
// sweeper rather than the guard.
type AttendanceRecord struct {
	BaseModel

	TenantID   string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	GuardID    string     `gorm:"type:uuid;not null;index" json:"guard_id"`
	SiteID     string     `gorm:"type:uuid;not null;index" json:"site_id"`
	CheckInAt  time.Time  `gorm:"not null" json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
	AutoClosed bool       `gorm:"default:false" json:"auto_closed"`
	Notes      string     `json:"notes"`
}
