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

// AddTrainingRecordInput captures one completed training for a guard.
type AddTrainingRecordInput struct {
	GuardID      string
	TrainingType string
	TrainingName string
	CompletedAt  *time.Time
	ExpiryDate   *time.Time
}

// AddGuardDocumentInput captures one document held on file for a guard.
type AddGuardDocumentInput struct {
	GuardID      string
	DocumentType string
	Name         string
	Reference    string
	ExpiryDate   *time.Time
}

// TrainingService manages the compliance data feeds: training records and
// guard documents.
type TrainingService struct {
	db           *gorm.DB
	auditService *AuditService
}

// NewTrainingService constructs a TrainingService instance.
func NewTrainingService(db *gorm.DB, auditService *AuditService) (*TrainingService, error) {
	if db == nil {
		return nil, errors.New("training service: db is required")
	}
	return &TrainingService{db: db, auditService: auditService}, nil
}

// AddRecord stores a training record for a guard in the caller's tenant.
func (s *TrainingService) AddRecord(ctx context.Context, input AddTrainingRecordInput) (*models.TrainingRecord, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	guardID := strings.TrimSpace(input.GuardID)
	if guardID == "" {
		return nil, apperrors.NewBadRequest("guard id is required")
	}
	if err := s.ensureGuard(ctx, tenantID, guardID); err != nil {
		return nil, err
	}

	record := &models.TrainingRecord{
		TenantID:     tenantID,
		GuardID:      guardID,
		TrainingType: strings.TrimSpace(input.TrainingType),
		TrainingName: strings.TrimSpace(input.TrainingName),
		CompletedAt:  input.CompletedAt,
		ExpiryDate:   input.ExpiryDate,
		IsActive:     true,
	}
	if record.TrainingType == "" && record.TrainingName == "" {
		return nil, apperrors.NewBadRequest("training type or name is required")
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("training service: create record: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "training.add",
		Resource: record.ID,
		Result:   "success",
		Metadata: map[string]any{"guard_id": guardID, "training_type": record.TrainingType},
	})

	return record, nil
}

// ListRecords returns the guard's active training records, newest first.
func (s *TrainingService) ListRecords(ctx context.Context, guardID string) ([]models.TrainingRecord, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.TrainingRecord
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND guard_id = ? AND is_active = ?", tenantID, strings.TrimSpace(guardID), true).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("training service: list records: %w", err)
	}
	return records, nil
}

// DeactivateRecord retires a training record from compliance scoring.
func (s *TrainingService) DeactivateRecord(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.TrainingRecord{}).
		Where("id = ? AND tenant_id = ?", strings.TrimSpace(id), tenantID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("training service: deactivate record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddDocument stores a document for a guard in the caller's tenant.
func (s *TrainingService) AddDocument(ctx context.Context, input AddGuardDocumentInput) (*models.GuardDocument, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	guardID := strings.TrimSpace(input.GuardID)
	if guardID == "" {
		return nil, apperrors.NewBadRequest("guard id is required")
	}
	if err := s.ensureGuard(ctx, tenantID, guardID); err != nil {
		return nil, err
	}

	docType := strings.TrimSpace(input.DocumentType)
	if docType == "" {
		return nil, apperrors.NewBadRequest("document type is required")
	}

	document := &models.GuardDocument{
		TenantID:     tenantID,
		GuardID:      guardID,
		DocumentType: docType,
		Name:         strings.TrimSpace(input.Name),
		Reference:    strings.TrimSpace(input.Reference),
		ExpiryDate:   input.ExpiryDate,
	}

	if err := s.db.WithContext(ctx).Create(document).Error; err != nil {
		return nil, fmt.Errorf("training service: create document: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "document.add",
		Resource: document.ID,
		Result:   "success",
		Metadata: map[string]any{"guard_id": guardID, "document_type": docType},
	})

	return document, nil
}

// ListDocuments returns the guard's documents, newest first.
func (s *TrainingService) ListDocuments(ctx context.Context, guardID string) ([]models.GuardDocument, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var documents []models.GuardDocument
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND guard_id = ?", tenantID, strings.TrimSpace(guardID)).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("training service: list documents: %w", err)
	}
	return documents, nil
}

func (s *TrainingService) ensureGuard(ctx context.Context, tenantID, guardID string) error {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Guard{}).
		Where("id = ? AND tenant_id = ?", guardID, tenantID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("training service: check guard: %w", err)
	}
	if count == 0 {
		return ErrGuardNotFound
	}
	return nil
}
