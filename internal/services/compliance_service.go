package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/pkg/metrics"
)

// Compliance statuses, in priority order. A bucket with any expired record is
// non-compliant regardless of how many records are merely expiring soon.
const (
	ComplianceStatusNonCompliant = "non-compliant"
	ComplianceStatusWarning      = "warning"
	ComplianceStatusCompliant    = "compliant"
)

// expiryWarningWindow is how far ahead a record's expiry triggers a warning.
const expiryWarningWindow = 30 * 24 * time.Hour

// ComplianceItem is one scored bucket of training records or documents.
type ComplianceItem struct {
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	AffectedCount int        `json:"affected_count"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// ComplianceSummary is the aggregate report returned to callers.
type ComplianceSummary struct {
	Items             []ComplianceItem `json:"items"`
	CompliantCount    int              `json:"compliant_count"`
	WarningCount      int              `json:"warning_count"`
	NonCompliantCount int              `json:"non_compliant_count"`
	TotalItems        int              `json:"total_items"`
	OverallScore      int              `json:"overall_score"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// ComplianceOptions carries the optional filters for a summary.
type ComplianceOptions struct {
	SupervisorID *string
}

// ComplianceService produces scored expiry reports over a tenant's guard
// training records and documents.
type ComplianceService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewComplianceService constructs a ComplianceService instance.
func NewComplianceService(db *gorm.DB) (*ComplianceService, error) {
	if db == nil {
		return nil, errors.New("compliance service: db is required")
	}
	return &ComplianceService{db: db, now: time.Now}, nil
}

// Summary buckets the tenant's active training records by training type and
// its guard documents by document type, classifies each bucket against the
// expiry windows, and returns the scored, sorted report.
func (s *ComplianceService) Summary(ctx context.Context, opts ComplianceOptions) (*ComplianceSummary, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	guardIDs, scoped, err := s.resolveGuardScope(ctx, tenantID, opts.SupervisorID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	trainings, err := s.fetchTrainingRecords(ctx, tenantID, guardIDs, scoped)
	if err != nil {
		return nil, err
	}
	documents, err := s.fetchDocuments(ctx, tenantID, guardIDs, scoped)
	if err != nil {
		return nil, err
	}

	var items []ComplianceItem
	items = append(items, bucketTrainings(trainings, now)...)
	items = append(items, bucketDocuments(documents, now)...)

	if len(items) == 0 {
		items = []ComplianceItem{{
			Title:    "Compliance Overview",
			Category: "overview",
			Status:   ComplianceStatusCompliant,
		}}
	}

	sortItems(items)

	summary := &ComplianceSummary{
		Items:       items,
		TotalItems:  len(items),
		GeneratedAt: now,
	}
	for _, item := range items {
		switch item.Status {
		case ComplianceStatusCompliant:
			summary.CompliantCount++
		case ComplianceStatusWarning:
			summary.WarningCount++
		case ComplianceStatusNonCompliant:
			summary.NonCompliantCount++
		}
	}
	summary.OverallScore = overallScore(summary.CompliantCount, summary.TotalItems)

	metrics.ComplianceReports.Inc()

	return summary, nil
}

// resolveGuardScope returns the guard subset when a supervisor filter is in
// effect. scoped is false when every guard of the tenant is in scope.
func (s *ComplianceService) resolveGuardScope(ctx context.Context, tenantID string, supervisorID *string) ([]string, bool, error) {
	if supervisorID == nil || strings.TrimSpace(*supervisorID) == "" {
		return nil, false, nil
	}

	var ids []string
	if err := s.db.WithContext(ctx).
		Model(&models.Guard{}).
		Where("tenant_id = ? AND supervisor_id = ?", tenantID, strings.TrimSpace(*supervisorID)).
		Pluck("id", &ids).Error; err != nil {
		return nil, false, fmt.Errorf("compliance service: resolve supervised guards: %w", err)
	}
	return ids, true, nil
}

func (s *ComplianceService) fetchTrainingRecords(ctx context.Context, tenantID string, guardIDs []string, scoped bool) ([]models.TrainingRecord, error) {
	if scoped && len(guardIDs) == 0 {
		return nil, nil
	}

	query := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if scoped {
		query = query.Where("guard_id IN ?", guardIDs)
	}

	var records []models.TrainingRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("compliance service: load training records: %w", err)
	}
	return records, nil
}

func (s *ComplianceService) fetchDocuments(ctx context.Context, tenantID string, guardIDs []string, scoped bool) ([]models.GuardDocument, error) {
	if scoped && len(guardIDs) == 0 {
		return nil, nil
	}

	query := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if scoped {
		query = query.Where("guard_id IN ?", guardIDs)
	}

	var documents []models.GuardDocument
	if err := query.Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("compliance service: load guard documents: %w", err)
	}
	return documents, nil
}

func bucketTrainings(records []models.TrainingRecord, now time.Time) []ComplianceItem {
	groups := make(map[string][]*time.Time)
	for i := range records {
		title := strings.TrimSpace(records[i].TrainingType)
		if title == "" {
			title = strings.TrimSpace(records[i].TrainingName)
		}
		if title == "" {
			title = "Other"
		}
		groups[title] = append(groups[title], records[i].ExpiryDate)
	}
	return classifyGroups(groups, "training", now)
}

func bucketDocuments(documents []models.GuardDocument, now time.Time) []ComplianceItem {
	groups := make(map[string][]*time.Time)
	for i := range documents {
		title := strings.TrimSpace(documents[i].DocumentType)
		if title == "" {
			title = "Other"
		}
		groups[title] = append(groups[title], documents[i].ExpiryDate)
	}
	return classifyGroups(groups, "document", now)
}

func classifyGroups(groups map[string][]*time.Time, category string, now time.Time) []ComplianceItem {
	items := make([]ComplianceItem, 0, len(groups))
	warningCutoff := now.Add(expiryWarningWindow)

	for title, expiries := range groups {
		var (
			expired      int
			expiringSoon int
			earliestDue  *time.Time
		)

		for _, expiry := range expiries {
			if expiry == nil {
				continue
			}
			switch {
			case expiry.Before(now):
				expired++
			case !expiry.After(warningCutoff):
				expiringSoon++
				if earliestDue == nil || expiry.Before(*earliestDue) {
					due := *expiry
					earliestDue = &due
				}
			}
		}

		item := ComplianceItem{Title: title, Category: category}
		switch {
		case expired > 0:
			item.Status = ComplianceStatusNonCompliant
			item.AffectedCount = expired
		case expiringSoon > 0:
			item.Status = ComplianceStatusWarning
			item.AffectedCount = expiringSoon
			item.DueDate = earliestDue
		default:
			item.Status = ComplianceStatusCompliant
		}

		items = append(items, item)
	}

	return items
}

var complianceStatusRank = map[string]int{
	ComplianceStatusNonCompliant: 0,
	ComplianceStatusWarning:      1,
	ComplianceStatusCompliant:    2,
}

func sortItems(items []ComplianceItem) {
	sort.Slice(items, func(i, j int) bool {
		ri, rj := complianceStatusRank[items[i].Status], complianceStatusRank[items[j].Status]
		if ri != rj {
			return ri < rj
		}
		return items[i].Title < items[j].Title
	})
}

func overallScore(compliant, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(compliant) / float64(total)))
}
