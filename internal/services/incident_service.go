package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
)

// ErrIncidentNotFound is returned when an incident does not exist within the tenant.
var ErrIncidentNotFound = apperrors.New("INCIDENT_NOT_FOUND", "Incident not found", 404)

// ReportIncidentInput captures a new incident report.
type ReportIncidentInput struct {
	SiteID      string
	ReportedBy  string
	Title       string
	Description string
	Severity    string
	OccurredAt  time.Time
}

// IncidentFilters narrows incident listings.
type IncidentFilters struct {
	SiteID   string
	Status   string
	Severity string
	Page     int
	PageSize int
}

// IncidentService records and resolves site incidents.
type IncidentService struct {
	db           *gorm.DB
	auditService *AuditService
	now          func() time.Time
}

// NewIncidentService constructs an IncidentService instance.
func NewIncidentService(db *gorm.DB, auditService *AuditService) (*IncidentService, error) {
	if db == nil {
		return nil, errors.New("incident service: db is required")
	}
	return &IncidentService{db: db, auditService: auditService, now: time.Now}, nil
}

// Report creates a new open incident.
func (s *IncidentService) Report(ctx context.Context, input ReportIncidentInput) (*models.Incident, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("incident title is required")
	}

	severity := strings.ToLower(strings.TrimSpace(input.Severity))
	switch severity {
	case models.IncidentSeverityLow, models.IncidentSeverityMedium, models.IncidentSeverityHigh, models.IncidentSeverityCritical:
	case "":
		severity = models.IncidentSeverityLow
	default:
		return nil, apperrors.NewBadRequest("unknown incident severity")
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	incident := &models.Incident{
		TenantID:    tenantID,
		SiteID:      strings.TrimSpace(input.SiteID),
		ReportedBy:  strings.TrimSpace(input.ReportedBy),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Severity:    severity,
		Status:      models.IncidentStatusOpen,
		OccurredAt:  occurredAt,
	}

	if err := s.db.WithContext(ctx).Create(incident).Error; err != nil {
		return nil, fmt.Errorf("incident service: create incident: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "incident.report",
		Resource: incident.ID,
		Result:   "success",
		Metadata: map[string]any{"severity": severity, "site_id": incident.SiteID},
	})

	return incident, nil
}

// Resolve closes an open incident with a resolution note.
func (s *IncidentService) Resolve(ctx context.Context, incidentID, resolution string) (*models.Incident, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var incident models.Incident
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, strings.TrimSpace(incidentID)).
		First(&incident).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("incident service: load incident: %w", err)
	}

	if incident.Status == models.IncidentStatusResolved {
		return nil, apperrors.NewBadRequest("incident is already resolved")
	}

	now := s.now()
	updates := map[string]any{
		"status":      models.IncidentStatusResolved,
		"resolution":  strings.TrimSpace(resolution),
		"resolved_at": now,
	}
	if err := s.db.WithContext(ctx).Model(&incident).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("incident service: resolve incident: %w", err)
	}
	incident.Status = models.IncidentStatusResolved
	incident.Resolution = strings.TrimSpace(resolution)
	incident.ResolvedAt = &now

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "incident.resolve",
		Resource: incident.ID,
		Result:   "success",
	})

	return &incident, nil
}

// List returns incidents for the tenant, newest first.
func (s *IncidentService) List(ctx context.Context, filters IncidentFilters) ([]models.Incident, int64, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Model(&models.Incident{}).Where("tenant_id = ?", tenantID)
	if siteID := strings.TrimSpace(filters.SiteID); siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if status := strings.TrimSpace(filters.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if severity := strings.TrimSpace(filters.Severity); severity != "" {
		query = query.Where("severity = ?", severity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("incident service: count incidents: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}

	var incidents []models.Incident
	if err := query.
		Order("occurred_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&incidents).Error; err != nil {
		return nil, 0, fmt.Errorf("incident service: list incidents: %w", err)
	}

	return incidents, total, nil
}
