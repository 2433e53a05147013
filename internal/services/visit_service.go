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

// ErrVisitNotFound is returned for unknown visitor or vehicle log entries.
var ErrVisitNotFound = apperrors.New("VISIT_NOT_FOUND", "Visit log entry not found", 404)

// VisitorEntryInput records a visitor arriving at a site.
type VisitorEntryInput struct {
	SiteID      string
	VisitorName string
	Phone       string
	Purpose     string
	HostName    string
}

// VehicleEntryInput records a vehicle entering a site.
type VehicleEntryInput struct {
	SiteID      string
	PlateNumber string
	VehicleType string
	DriverName  string
}

// VisitService keeps visitor and vehicle gate logs per site.
type VisitService struct {
	db           *gorm.DB
	auditService *AuditService
	now          func() time.Time
}

// NewVisitService constructs a VisitService instance.
func NewVisitService(db *gorm.DB, auditService *AuditService) (*VisitService, error) {
	if db == nil {
		return nil, errors.New("visit service: db is required")
	}
	return &VisitService{db: db, auditService: auditService, now: time.Now}, nil
}

// RecordVisitorEntry logs a visitor arriving at a site.
func (s *VisitService) RecordVisitorEntry(ctx context.Context, input VisitorEntryInput) (*models.VisitorLog, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.VisitorName)
	siteID := strings.TrimSpace(input.SiteID)
	if name == "" || siteID == "" {
		return nil, apperrors.NewBadRequest("visitor name and site id are required")
	}

	entry := &models.VisitorLog{
		TenantID:    tenantID,
		SiteID:      siteID,
		VisitorName: name,
		Phone:       strings.TrimSpace(input.Phone),
		Purpose:     strings.TrimSpace(input.Purpose),
		HostName:    strings.TrimSpace(input.HostName),
		EntryAt:     s.now(),
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("visit service: create visitor entry: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "visitor.entry",
		Resource: entry.ID,
		Result:   "success",
		Metadata: map[string]any{"site_id": siteID},
	})

	return entry, nil
}

// RecordVisitorExit stamps the exit time on a visitor log entry.
func (s *VisitService) RecordVisitorExit(ctx context.Context, entryID string) (*models.VisitorLog, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var entry models.VisitorLog
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, strings.TrimSpace(entryID)).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("visit service: load visitor entry: %w", err)
	}
	if entry.ExitAt != nil {
		return nil, apperrors.NewBadRequest("visitor has already exited")
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&entry).Update("exit_at", now).Error; err != nil {
		return nil, fmt.Errorf("visit service: record visitor exit: %w", err)
	}
	entry.ExitAt = &now

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "visitor.exit",
		Resource: entry.ID,
		Result:   "success",
	})

	return &entry, nil
}

// RecordVehicleEntry logs a vehicle entering a site.
func (s *VisitService) RecordVehicleEntry(ctx context.Context, input VehicleEntryInput) (*models.VehicleLog, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	plate := strings.ToUpper(strings.TrimSpace(input.PlateNumber))
	siteID := strings.TrimSpace(input.SiteID)
	if plate == "" || siteID == "" {
		return nil, apperrors.NewBadRequest("plate number and site id are required")
	}

	entry := &models.VehicleLog{
		TenantID:    tenantID,
		SiteID:      siteID,
		PlateNumber: plate,
		VehicleType: strings.TrimSpace(input.VehicleType),
		DriverName:  strings.TrimSpace(input.DriverName),
		EntryAt:     s.now(),
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("visit service: create vehicle entry: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "vehicle.entry",
		Resource: entry.ID,
		Result:   "success",
		Metadata: map[string]any{"site_id": siteID, "plate_number": plate},
	})

	return entry, nil
}

// RecordVehicleExit stamps the exit time on a vehicle log entry.
func (s *VisitService) RecordVehicleExit(ctx context.Context, entryID string) (*models.VehicleLog, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var entry models.VehicleLog
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, strings.TrimSpace(entryID)).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("visit service: load vehicle entry: %w", err)
	}
	if entry.ExitAt != nil {
		return nil, apperrors.NewBadRequest("vehicle has already exited")
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&entry).Update("exit_at", now).Error; err != nil {
		return nil, fmt.Errorf("visit service: record vehicle exit: %w", err)
	}
	entry.ExitAt = &now

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "vehicle.exit",
		Resource: entry.ID,
		Result:   "success",
	})

	return &entry, nil
}

// ListVisitors returns the site's visitor log, newest first.
func (s *VisitService) ListVisitors(ctx context.Context, siteID string, limit int) ([]models.VisitorLog, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if siteID = strings.TrimSpace(siteID); siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}

	var entries []models.VisitorLog
	if err := query.Order("entry_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("visit service: list visitors: %w", err)
	}
	return entries, nil
}

// ListVehicles returns the site's vehicle log, newest first.
func (s *VisitService) ListVehicles(ctx context.Context, siteID string, limit int) ([]models.VehicleLog, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if siteID = strings.TrimSpace(siteID); siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}

	var entries []models.VehicleLog
	if err := query.Order("entry_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("visit service: list vehicles: %w", err)
	}
	return entries, nil
}
