package database

import (
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
// Permission, role, menu, and submenu seeding happens during agency
// registration, not here: the catalog is tenant-driven.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Department{},
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
}
