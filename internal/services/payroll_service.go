package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigilohq/vigilo/internal/models"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
)

// PayrollService computes guard wages from closed attendance records.
type PayrollService struct {
	db           *gorm.DB
	auditService *AuditService
}

// NewPayrollService constructs a PayrollService instance.
func NewPayrollService(db *gorm.DB, auditService *AuditService) (*PayrollService, error) {
	if db == nil {
		return nil, errors.New("payroll service: db is required")
	}
	return &PayrollService{db: db, auditService: auditService}, nil
}

// GeneratePeriod computes one payroll entry per active guard for the given
// period. Hours come from closed shifts whose check-in falls inside the
// period; the amount is hours times the guard's current hourly rate.
// Re-running the same period replaces the previous entries.
func (s *PayrollService) GeneratePeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]models.PayrollEntry, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if !periodEnd.After(periodStart) {
		return nil, apperrors.NewBadRequest("period end must be after period start")
	}

	var guards []models.Guard
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("employee_code ASC").
		Find(&guards).Error; err != nil {
		return nil, fmt.Errorf("payroll service: load guards: %w", err)
	}

	var records []models.AttendanceRecord
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND check_out_at IS NOT NULL AND check_in_at >= ? AND check_in_at < ?",
			tenantID, periodStart, periodEnd).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("payroll service: load attendance: %w", err)
	}

	hoursByGuard := make(map[string]float64, len(guards))
	for _, record := range records {
		hoursByGuard[record.GuardID] += record.CheckOutAt.Sub(record.CheckInAt).Hours()
	}

	entries := make([]models.PayrollEntry, 0, len(guards))
	for _, guard := range guards {
		hours := roundHours(hoursByGuard[guard.ID])
		entries = append(entries, models.PayrollEntry{
			TenantID:    tenantID,
			GuardID:     guard.ID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			HoursWorked: hours,
			HourlyRate:  guard.HourlyRate,
			Amount:      roundMoney(hours * guard.HourlyRate),
		})
	}
	if len(entries) == 0 {
		return entries, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "guard_id"}, {Name: "period_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"period_end", "hours_worked", "hourly_rate", "amount", "updated_at",
			}),
		}).Create(&entries).Error
	})
	if err != nil {
		return nil, fmt.Errorf("payroll service: persist entries: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "payroll.generate",
		Resource: periodStart.Format("2006-01-02"),
		Result:   "success",
		Metadata: map[string]any{"entries": len(entries)},
	})

	return entries, nil
}

// ListPeriod returns the payroll entries generated for a period.
func (s *PayrollService) ListPeriod(ctx context.Context, periodStart time.Time) ([]models.PayrollEntry, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var entries []models.PayrollEntry
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND period_start = ?", tenantID, periodStart).
		Order("guard_id ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("payroll service: list entries: %w", err)
	}
	return entries, nil
}

// roundHours keeps two decimal places of worked time.
func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// roundMoney keeps two decimal places of currency.
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
