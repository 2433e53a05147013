package models

import "time"

type VisitorLog struct {
	BaseModel

	TenantID    string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SiteID      string     `gorm:"type:uuid;not null;index" json:"site_id"`
	VisitorName string     `gorm:"not null" json:"visitor_name"`
	Phone       string     `json:"phone"`
	Purpose     string     `json:"purpose"`
	HostName    string     `json:"host_name"`
	EntryAt     time.Time  `gorm:"not null" json:"entry_at"`
	ExitAt      *time.Time `json:"exit_at"`
}
