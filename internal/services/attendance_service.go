package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
)

var (
	// ErrShiftAlreadyOpen rejects a check-in while a previous shift is still open.
	ErrShiftAlreadyOpen = apperrors.New("SHIFT_ALREADY_OPEN", "Guard already has an open shift", http.StatusConflict)
	// ErrNoOpenShift rejects a check-out when no open shift exists.
	ErrNoOpenShift = apperrors.New("NO_OPEN_SHIFT", "Guard has no open shift to close", http.StatusBadRequest)
)

// staleShiftAge is how long an open shift may run before the maintenance
// sweeper force-closes it.
const staleShiftAge = 24 * time.Hour

// CheckInInput opens a shift for a guard at a site.
type CheckInInput struct {
	GuardID string
	SiteID  string
	Notes   string
}

// AttendanceService tracks guard shifts at client sites.
type AttendanceService struct {
	db           *gorm.DB
	auditService *AuditService
	now          func() time.Time
}

// NewAttendanceService constructs an AttendanceService instance.
func NewAttendanceService(db *gorm.DB, auditService *AuditService) (*AttendanceService, error) {
	if db == nil {
		return nil, errors.New("attendance service: db is required")
	}
	return &AttendanceService{db: db, auditService: auditService, now: time.Now}, nil
}

// CheckIn opens a shift. A guard can hold at most one open shift at a time.
func (s *AttendanceService) CheckIn(ctx context.Context, input CheckInInput) (*models.AttendanceRecord, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	guardID := strings.TrimSpace(input.GuardID)
	siteID := strings.TrimSpace(input.SiteID)
	if guardID == "" || siteID == "" {
		return nil, apperrors.NewBadRequest("guard id and site id are required")
	}

	var record *models.AttendanceRecord

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.AttendanceRecord{}).
			Where("tenant_id = ? AND guard_id = ? AND check_out_at IS NULL", tenantID, guardID).
			Count(&open).Error; err != nil {
			return fmt.Errorf("attendance service: check open shifts: %w", err)
		}
		if open > 0 {
			return ErrShiftAlreadyOpen
		}

		record = &models.AttendanceRecord{
			TenantID:  tenantID,
			GuardID:   guardID,
			SiteID:    siteID,
			CheckInAt: s.now(),
			Notes:     strings.TrimSpace(input.Notes),
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("attendance service: create record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "attendance.check_in",
		Resource: record.ID,
		Result:   "success",
		Metadata: map[string]any{"guard_id": guardID, "site_id": siteID},
	})

	return record, nil
}

// CheckOut closes the guard's open shift.
func (s *AttendanceService) CheckOut(ctx context.Context, guardID string) (*models.AttendanceRecord, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	guardID = strings.TrimSpace(guardID)
	if guardID == "" {
		return nil, apperrors.NewBadRequest("guard id is required")
	}

	var record models.AttendanceRecord
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND guard_id = ? AND check_out_at IS NULL", tenantID, guardID).
		Order("check_in_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOpenShift
	}
	if err != nil {
		return nil, fmt.Errorf("attendance service: load open shift: %w", err)
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&record).Update("check_out_at", now).Error; err != nil {
		return nil, fmt.Errorf("attendance service: close shift: %w", err)
	}
	record.CheckOutAt = &now

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "attendance.check_out",
		Resource: record.ID,
		Result:   "success",
	})

	return &record, nil
}

// ListForGuard returns the guard's attendance history, newest first.
func (s *AttendanceService) ListForGuard(ctx context.Context, guardID string, limit int) ([]models.AttendanceRecord, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var records []models.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND guard_id = ?", tenantID, strings.TrimSpace(guardID)).
		Order("check_in_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("attendance service: list records: %w", err)
	}
	return records, nil
}

// AutoCloseStale closes open shifts older than staleShiftAge across all
// tenants. Invoked by the maintenance sweeper, not request handlers.
func (s *AttendanceService) AutoCloseStale(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	now := s.now()
	cutoff := now.Add(-staleShiftAge)

	result := s.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("check_out_at IS NULL AND check_in_at < ?", cutoff).
		Updates(map[string]any{
			"check_out_at": now,
			"auto_closed":  true,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("attendance service: auto-close stale shifts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
