package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
)

// ErrSiteNotFound indicates the requested site does not exist in the tenant.
var ErrSiteNotFound = apperrors.New("SITE_NOT_FOUND", "Site not found", http.StatusNotFound)

// CreateSiteInput captures the attributes of a client site.
type CreateSiteInput struct {
	Name        string
	ClientName  string
	AddressLine string
	City        string
}

// SiteService manages the tenant's client site registry.
type SiteService struct {
	db           *gorm.DB
	auditService *AuditService
}

// NewSiteService constructs a SiteService instance.
func NewSiteService(db *gorm.DB, auditService *AuditService) (*SiteService, error) {
	if db == nil {
		return nil, errors.New("site service: db is required")
	}
	return &SiteService{db: db, auditService: auditService}, nil
}

// Create registers a client site in the caller's tenant.
func (s *SiteService) Create(ctx context.Context, input CreateSiteInput) (*models.Site, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("site name is required")
	}

	site := &models.Site{
		TenantID:    tenantID,
		Name:        name,
		ClientName:  strings.TrimSpace(input.ClientName),
		AddressLine: strings.TrimSpace(input.AddressLine),
		City:        strings.TrimSpace(input.City),
		IsActive:    true,
	}

	if err := s.db.WithContext(ctx).Create(site).Error; err != nil {
		return nil, fmt.Errorf("site service: create site: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "site.create",
		Resource: site.ID,
		Result:   "success",
		Metadata: map[string]any{"name": name},
	})

	return site, nil
}

// GetByID loads a site by identifier within the caller's tenant.
func (s *SiteService) GetByID(ctx context.Context, id string) (*models.Site, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var site models.Site
	err = s.db.WithContext(ctx).First(&site, "id = ? AND tenant_id = ?", strings.TrimSpace(id), tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("site service: get site: %w", err)
	}
	return &site, nil
}

// List returns the tenant's sites ordered by name.
func (s *SiteService) List(ctx context.Context) ([]models.Site, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var sites []models.Site
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&sites).Error; err != nil {
		return nil, fmt.Errorf("site service: list sites: %w", err)
	}
	return sites, nil
}
