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
	// ErrGuardNotFound indicates the requested guard does not exist in the tenant.
	ErrGuardNotFound = apperrors.New("GUARD_NOT_FOUND", "Guard not found", http.StatusNotFound)
)

// CreateGuardInput describes the fields accepted when registering a guard.
type CreateGuardInput struct {
	EmployeeCode string
	FirstName    string
	LastName     string
	Phone        string
	SupervisorID *string
	HourlyRate   float64
	JoinedAt     *time.Time
}

// GuardFilters captures listing filters.
type GuardFilters struct {
	SupervisorID *string
	IsActive     *bool
	Query        string
}

// ListGuardsOptions controls pagination for guard listing.
type ListGuardsOptions struct {
	Page     int
	PageSize int
	Filters  GuardFilters
}

// GuardService manages the tenant's guard roster.
type GuardService struct {
	db           *gorm.DB
	auditService *AuditService
}

// NewGuardService constructs a GuardService instance.
func NewGuardService(db *gorm.DB, auditService *AuditService) (*GuardService, error) {
	if db == nil {
		return nil, errors.New("guard service: db is required")
	}
	return &GuardService{db: db, auditService: auditService}, nil
}

// Create registers a guard in the caller's tenant.
func (s *GuardService) Create(ctx context.Context, input CreateGuardInput) (*models.Guard, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.EmployeeCode)
	if code == "" {
		return nil, apperrors.NewBadRequest("employee code is required")
	}
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, apperrors.NewBadRequest("first name is required")
	}
	if input.HourlyRate < 0 {
		return nil, apperrors.NewBadRequest("hourly rate must not be negative")
	}

	guard := &models.Guard{
		TenantID:     tenantID,
		EmployeeCode: code,
		FirstName:    firstName,
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		HourlyRate:   input.HourlyRate,
		JoinedAt:     input.JoinedAt,
		IsActive:     true,
	}

	if input.SupervisorID != nil {
		supervisorID := strings.TrimSpace(*input.SupervisorID)
		if supervisorID != "" {
			guard.SupervisorID = &supervisorID
		}
	}

	if err := s.db.WithContext(ctx).Create(guard).Error; err != nil {
		return nil, fmt.Errorf("guard service: create guard: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "guard.create",
		Resource: guard.ID,
		Result:   "success",
		Metadata: map[string]any{
			"employee_code": guard.EmployeeCode,
		},
	})

	return guard, nil
}

// GetByID loads a guard with training records and documents.
func (s *GuardService) GetByID(ctx context.Context, id string) (*models.Guard, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var guard models.Guard
	err = s.db.WithContext(ctx).
		Preload("TrainingRecords").
		Preload("Documents").
		First(&guard, "id = ? AND tenant_id = ?", id, tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("guard service: get guard: %w", err)
	}
	return &guard, nil
}

// List retrieves guards matching the supplied filters with pagination.
func (s *GuardService) List(ctx context.Context, opts ListGuardsOptions) ([]models.Guard, int64, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, 0, err
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	perPage := opts.PageSize
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}

	query := s.db.WithContext(ctx).Model(&models.Guard{}).Where("tenant_id = ?", tenantID)
	if opts.Filters.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", strings.TrimSpace(*opts.Filters.SupervisorID))
	}
	if opts.Filters.IsActive != nil {
		query = query.Where("is_active = ?", *opts.Filters.IsActive)
	}
	if q := strings.TrimSpace(opts.Filters.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(employee_code) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("guard service: count guards: %w", err)
	}

	var guards []models.Guard
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&guards).Error; err != nil {
		return nil, 0, fmt.Errorf("guard service: list guards: %w", err)
	}

	return guards, total, nil
}

// AssignSupervisor links or clears the guard's supervisor.
func (s *GuardService) AssignSupervisor(ctx context.Context, id string, supervisorID *string) (*models.Guard, error) {
	ctx = ensureContext(ctx)

	guard, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var value *string
	if supervisorID != nil {
		trimmed := strings.TrimSpace(*supervisorID)
		if trimmed != "" {
			value = &trimmed
		}
	}

	if err := s.db.WithContext(ctx).Model(guard).Update("supervisor_id", value).Error; err != nil {
		return nil, fmt.Errorf("guard service: assign supervisor: %w", err)
	}
	guard.SupervisorID = value

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "guard.assign_supervisor",
		Resource: guard.ID,
		Result:   "success",
	})

	return guard, nil
}

// SetActive toggles the active state of a guard.
func (s *GuardService) SetActive(ctx context.Context, id string, active bool) error {
	ctx = ensureContext(ctx)

	guard, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(guard).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("guard service: update active state: %w", err)
	}

	action := "guard.activate"
	if !active {
		action = "guard.deactivate"
	}
	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   action,
		Resource: guard.ID,
		Result:   "success",
	})

	return nil
}
