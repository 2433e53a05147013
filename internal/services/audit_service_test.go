package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/internal/tenantctx"
)

func TestAuditLog_DefaultsFromIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	ctx := tenantctx.WithIdentity(context.Background(), tenantctx.Identity{
		TenantID:  "tenant-1",
		UserID:    "user-9",
		Username:  "carol",
		IPAddress: "203.0.113.9",
		UserAgent: "vigilo-test",
	})

	err = svc.Log(ctx, AuditEntry{
		Action:   "guard.create",
		Resource: "guard-1",
		Result:   "success",
		Metadata: map[string]any{"employee_code": "G-001"},
	})
	require.NoError(t, err)

	var stored models.AuditLog
	require.NoError(t, db.First(&stored).Error)
	require.NotNil(t, stored.TenantID)
	require.Equal(t, "tenant-1", *stored.TenantID)
	require.NotNil(t, stored.UserID)
	require.Equal(t, "user-9", *stored.UserID)
	require.Equal(t, "carol", stored.Username)
	require.Equal(t, "203.0.113.9", stored.IPAddress)
	require.Contains(t, stored.Metadata, "G-001")
}

func TestAuditLog_RequiresActionAndResult(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	require.Error(t, svc.Log(context.Background(), AuditEntry{Result: "success"}))
	require.Error(t, svc.Log(context.Background(), AuditEntry{Action: "guard.create"}))
}

func TestAuditList_FiltersByAction(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	require.NoError(t, svc.Log(ctx, AuditEntry{Action: "guard.create", Result: "success"}))
	require.NoError(t, svc.Log(ctx, AuditEntry{Action: "guard.create", Result: "success"}))
	require.NoError(t, svc.Log(ctx, AuditEntry{Action: "site.create", Result: "success"}))

	logs, total, err := svc.List(ctx, AuditListOptions{
		Filters: AuditFilters{Action: "guard.create"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, logs, 2)

	// Other tenants see nothing.
	_, total, err = svc.List(tenantContext("tenant-2"), AuditListOptions{})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestAuditCleanupOlderThan(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	old := models.AuditLog{Action: "auth.login", Result: "success", CreatedAt: time.Now().AddDate(0, 0, -120)}
	recent := models.AuditLog{Action: "auth.login", Result: "success", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	removed, err := svc.CleanupOlderThan(context.Background(), 90)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
