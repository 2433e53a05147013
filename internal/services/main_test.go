package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/internal/tenantctx"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Permission{},
		&models.Role{},
		&models.Department{},
		&models.User{},
		&models.Menu{},
		&models.SubMenu{},
		&models.Guard{},
		&models.Site{},
		&models.TrainingRecord{},
		&models.GuardDocument{},
		&models.AttendanceRecord{},
		&models.Incident{},
		&models.VisitorLog{},
		&models.VehicleLog{},
		&models.PayrollEntry{},
		&models.AuditLog{},
	)
	require.NoError(t, err, "failed to auto-migrate")

	return db
}

func tenantContext(tenantID string) context.Context {
	return tenantctx.WithIdentity(context.Background(), tenantctx.Identity{
		TenantID:  tenantID,
		UserID:    "user-1",
		Username:  "tester",
		RoleCodes: []string{"ADMIN"},
	})
}

func createTestGuard(t *testing.T, db *gorm.DB, tenantID, code string, rate float64) *models.Guard {
	t.Helper()

	guard := &models.Guard{
		TenantID:     tenantID,
		EmployeeCode: code,
		FirstName:    "Guard",
		LastName:     code,
		HourlyRate:   rate,
		IsActive:     true,
	}
	require.NoError(t, db.Create(guard).Error, "failed to create guard")
	return guard
}

func createTestSite(t *testing.T, db *gorm.DB, tenantID, name string) *models.Site {
	t.Helper()

	site := &models.Site{
		TenantID: tenantID,
		Name:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(site).Error, "failed to create site")
	return site
}
