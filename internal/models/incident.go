package models

import "time"

// Incident severities.
const (
	IncidentSeverityLow      = "low"
	IncidentSeverityMedium   = "medium"
	IncidentSeverityHigh     = "high"
	IncidentSeverityCritical = "critical"
)

// Incident statuses.
const (
	IncidentStatusOpen     = "open"
	IncidentStatusResolved = "resolved"
)

type Incident struct {
	BaseModel

	TenantID    string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SiteID      string     `gorm:"type:uuid;not null;index" json:"site_id"`
	ReportedBy  string     `gorm:"type:uuid;not null" json:"reported_by"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Severity    string     `gorm:"not null;default:low" json:"severity"`
	Status      string     `gorm:"not null;default:open;index" json:"status"`
	OccurredAt  time.Time  `json:"occurred_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	Resolution  string     `json:"resolution"`
}
