package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vigilohq/vigilo/internal/models"
)

func TestIncidentReportAndResolve(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewIncidentService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	site := createTestSite(t, db, "tenant-1", "Harbour Gate")

	incident, err := svc.Report(ctx, ReportIncidentInput{
		SiteID:      site.ID,
		ReportedBy:  "user-1",
		Title:       "Perimeter breach",
		Description: "Fence cut on the north side",
		Severity:    "High",
	})
	require.NoError(t, err)
	require.Equal(t, models.IncidentStatusOpen, incident.Status)
	require.Equal(t, models.IncidentSeverityHigh, incident.Severity)
	require.False(t, incident.OccurredAt.IsZero())

	resolved, err := svc.Resolve(ctx, incident.ID, "Fence repaired, patrols increased")
	require.NoError(t, err)
	require.Equal(t, models.IncidentStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = svc.Resolve(ctx, incident.ID, "again")
	require.Error(t, err)
}

func TestIncidentReport_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewIncidentService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")

	_, err = svc.Report(ctx, ReportIncidentInput{Severity: "low"})
	require.Error(t, err)

	_, err = svc.Report(ctx, ReportIncidentInput{Title: "Broken lock", Severity: "catastrophic"})
	require.Error(t, err)

	// Missing severity defaults to low.
	incident, err := svc.Report(ctx, ReportIncidentInput{Title: "Broken lock"})
	require.NoError(t, err)
	require.Equal(t, models.IncidentSeverityLow, incident.Severity)
}

func TestIncidentList_Filters(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewIncidentService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	site := createTestSite(t, db, "tenant-1", "Harbour Gate")

	first, err := svc.Report(ctx, ReportIncidentInput{SiteID: site.ID, Title: "Broken lock", Severity: "low"})
	require.NoError(t, err)
	_, err = svc.Report(ctx, ReportIncidentInput{SiteID: site.ID, Title: "Tailgating", Severity: "medium"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, first.ID, "Lock replaced")
	require.NoError(t, err)

	open, total, err := svc.List(ctx, IncidentFilters{Status: models.IncidentStatusOpen})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Tailgating", open[0].Title)

	_, total, err = svc.List(tenantContext("tenant-2"), IncidentFilters{})
	require.NoError(t, err)
	require.Zero(t, total)

	_, err = svc.Resolve(ctx, "missing", "n/a")
	require.ErrorIs(t, err, ErrIncidentNotFound)
}
