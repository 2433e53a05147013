package provisioning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/pkg/crypto"
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
		&models.AuditLog{},
	)
	require.NoError(t, err, "failed to auto-migrate")

	return db
}

func registrationInput() RegisterAgencyInput {
	return RegisterAgencyInput{
		CompanyName:        "Shield Security Services",
		RegistrationNumber: "REG-2026-001",
		Email:              "contact@shield.example.com",
		Phone:              "+91 98765 43210",
		City:               "Mumbai",
		State:              "Maharashtra",
		PostalCode:         "400001",

		AdminUserName:  "shield.admin",
		AdminEmail:     "admin@shield.example.com",
		AdminPassword:  "very-secret-pass",
		AdminFirstName: "Asha",
		AdminLastName:  "Patel",
	}
}

func TestRegisterAgency_ProvisionsEverything(t *testing.T) {
	db := setupTestDB(t)

	registeredAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p, err := NewProvisioner(db, nil, WithNow(func() time.Time { return registeredAt }))
	require.NoError(t, err)

	result, err := p.RegisterAgency(context.Background(), registrationInput())
	require.NoError(t, err)
	require.NotEmpty(t, result.TenantID)
	require.Equal(t, "shield.admin", result.AdminUsername)

	var tenant models.Tenant
	require.NoError(t, db.First(&tenant, "id = ?", result.TenantID).Error)
	require.Equal(t, "Shield Security Services", tenant.CompanyName)
	require.Equal(t, "India", tenant.Country, "country defaults when omitted")
	require.True(t, tenant.IsActive)
	require.True(t, tenant.SubscriptionStart.Equal(registeredAt))
	require.True(t, tenant.SubscriptionEnd.Equal(registeredAt.Add(365*24*time.Hour)))

	var permissionCount int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&permissionCount).Error)
	require.Equal(t, int64(20), permissionCount)

	var roles []models.Role
	require.NoError(t, db.Preload("Permissions").Preload("Menus").Preload("SubMenus").
		Where("tenant_id = ?", tenant.ID).Find(&roles).Error)
	require.Len(t, roles, 4)

	byCode := make(map[string]models.Role, len(roles))
	for _, role := range roles {
		require.True(t, role.IsSystem)
		byCode[role.Code] = role
	}

	admin := byCode[RoleAdmin]
	require.Len(t, admin.Permissions, 20)
	require.Len(t, admin.Menus, 6)
	require.Len(t, admin.SubMenus, 30)

	accounts := byCode[RoleAccounts]
	require.Empty(t, accounts.Permissions)
	require.Len(t, accounts.Menus, 2)
	require.Len(t, accounts.SubMenus, 6)

	guard := byCode[RoleGuard]
	require.Len(t, guard.Menus, 3)
	require.Len(t, guard.SubMenus, 11) // Operations submenus plus company profile

	supervisor := byCode[RoleSupervisor]
	require.Len(t, supervisor.Menus, 4)
	require.Len(t, supervisor.SubMenus, 14) // Operations and HR submenus plus company profile

	var menuCount, subMenuCount int64
	require.NoError(t, db.Model(&models.Menu{}).Where("tenant_id = ?", tenant.ID).Count(&menuCount).Error)
	require.NoError(t, db.Model(&models.SubMenu{}).Where("tenant_id = ?", tenant.ID).Count(&subMenuCount).Error)
	require.Equal(t, int64(6), menuCount)
	require.Equal(t, int64(30), subMenuCount)

	var department models.Department
	require.NoError(t, db.First(&department, "tenant_id = ?", tenant.ID).Error)
	require.Equal(t, "Administration", department.Name)
	require.True(t, department.IsDefault)

	var adminUser models.User
	require.NoError(t, db.Preload("Roles").First(&adminUser, "id = ?", result.AdminUserID).Error)
	require.Equal(t, tenant.ID, adminUser.TenantID)
	require.NotNil(t, adminUser.DepartmentID)
	require.Equal(t, department.ID, *adminUser.DepartmentID)
	require.False(t, adminUser.EmailVerified)
	require.Len(t, adminUser.Roles, 1)
	require.Equal(t, RoleAdmin, adminUser.Roles[0].Code)

	// The password is stored hashed, never verbatim.
	require.NotEqual(t, "very-secret-pass", adminUser.Password)
	require.True(t, crypto.VerifyPassword(adminUser.Password, "very-secret-pass"))
}

func TestRegisterAgency_DuplicateRegistration(t *testing.T) {
	db := setupTestDB(t)
	p, err := NewProvisioner(db, nil)
	require.NoError(t, err)

	_, err = p.RegisterAgency(context.Background(), registrationInput())
	require.NoError(t, err)

	// Same registration number, fresh everything else.
	input := registrationInput()
	input.Email = "other@shield.example.com"
	input.AdminUserName = "other.admin"
	input.AdminEmail = "other.admin@shield.example.com"
	_, err = p.RegisterAgency(context.Background(), input)
	require.ErrorIs(t, err, ErrAgencyExists)

	// Same agency email.
	input = registrationInput()
	input.RegistrationNumber = "REG-2026-002"
	input.AdminUserName = "other.admin"
	input.AdminEmail = "other.admin@shield.example.com"
	_, err = p.RegisterAgency(context.Background(), input)
	require.ErrorIs(t, err, ErrAgencyExists)

	// Email comparison is case-insensitive.
	input = registrationInput()
	input.RegistrationNumber = "REG-2026-003"
	input.Email = "CONTACT@shield.example.com"
	input.AdminUserName = "other.admin"
	input.AdminEmail = "other.admin@shield.example.com"
	_, err = p.RegisterAgency(context.Background(), input)
	require.ErrorIs(t, err, ErrAgencyExists)

	var tenantCount int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenantCount).Error)
	require.Equal(t, int64(1), tenantCount)
}

func TestRegisterAgency_DuplicateAdminCredentials(t *testing.T) {
	db := setupTestDB(t)
	p, err := NewProvisioner(db, nil)
	require.NoError(t, err)

	_, err = p.RegisterAgency(context.Background(), registrationInput())
	require.NoError(t, err)

	input := registrationInput()
	input.RegistrationNumber = "REG-2026-002"
	input.Email = "second@shield.example.com"
	input.AdminEmail = "second.admin@shield.example.com"
	// Username collides with the first tenant's admin.
	_, err = p.RegisterAgency(context.Background(), input)
	require.ErrorIs(t, err, ErrAdminCredentialsTaken)

	input = registrationInput()
	input.RegistrationNumber = "REG-2026-002"
	input.Email = "second@shield.example.com"
	input.AdminUserName = "second.admin"
	// Admin email collides across tenants too.
	_, err = p.RegisterAgency(context.Background(), input)
	require.ErrorIs(t, err, ErrAdminCredentialsTaken)

	// The failed attempts left no tenant behind.
	var tenantCount int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenantCount).Error)
	require.Equal(t, int64(1), tenantCount)

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.Equal(t, int64(1), userCount)
}

func TestRegisterAgency_PermissionCatalogSeededOnce(t *testing.T) {
	db := setupTestDB(t)
	p, err := NewProvisioner(db, nil)
	require.NoError(t, err)

	_, err = p.RegisterAgency(context.Background(), registrationInput())
	require.NoError(t, err)

	second := registrationInput()
	second.RegistrationNumber = "REG-2026-002"
	second.Email = "second@shield.example.com"
	second.AdminUserName = "second.admin"
	second.AdminEmail = "second.admin@shield.example.com"
	result, err := p.RegisterAgency(context.Background(), second)
	require.NoError(t, err)

	// Both tenants share the global catalog of twenty rows.
	var permissionCount int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&permissionCount).Error)
	require.Equal(t, int64(20), permissionCount)

	var admin models.Role
	require.NoError(t, db.Preload("Permissions").
		First(&admin, "tenant_id = ? AND code = ?", result.TenantID, RoleAdmin).Error)
	require.Len(t, admin.Permissions, 20)
}

func TestRegisterAgency_NormalisesInput(t *testing.T) {
	db := setupTestDB(t)
	p, err := NewProvisioner(db, nil)
	require.NoError(t, err)

	input := registrationInput()
	input.CompanyName = "  Shield Security Services  "
	input.Email = "  Contact@Shield.Example.Com "
	input.AdminEmail = " ADMIN@shield.example.com "

	result, err := p.RegisterAgency(context.Background(), input)
	require.NoError(t, err)

	var tenant models.Tenant
	require.NoError(t, db.First(&tenant, "id = ?", result.TenantID).Error)
	require.Equal(t, "Shield Security Services", tenant.CompanyName)
	require.Equal(t, "contact@shield.example.com", tenant.Email)

	var admin models.User
	require.NoError(t, db.First(&admin, "id = ?", result.AdminUserID).Error)
	require.Equal(t, "admin@shield.example.com", admin.Email)
}

func TestRegisterAgency_MidTransactionFailureLeavesNoPartialTenant(t *testing.T) {
	db := setupTestDB(t)
	p, err := NewProvisioner(db, nil)
	require.NoError(t, err)

	// Break the last provisioning step so the tenant, permission catalog,
	// roles, department, admin user, and menus are all written before the
	// workflow fails.
	require.NoError(t, db.Migrator().DropTable(&models.SubMenu{}))

	_, err = p.RegisterAgency(context.Background(), registrationInput())
	require.Error(t, err)

	assertEmpty := func(model any) {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	assertEmpty(&models.Tenant{})
	assertEmpty(&models.Permission{})
	assertEmpty(&models.Role{})
	assertEmpty(&models.Department{})
	assertEmpty(&models.User{})
	assertEmpty(&models.Menu{})
}

func TestRegisterAgency_AdminUniqueViolationMapsToCredentialsTaken(t *testing.T) {
	db := setupTestDB(t)
	p, err := NewProvisioner(db, nil)
	require.NoError(t, err)

	// Simulate a registration slipping in between the duplicate pre-check and
	// the admin insert: a create callback plants a rival user with the same
	// username, so the unique index rather than the pre-check reports the
	// duplicate.
	input := registrationInput()
	planted := false
	err = db.Callback().Create().Before("gorm:create").Register("plant_rival_admin", func(tx *gorm.DB) {
		if planted {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.User); !ok {
			return
		}
		planted = true

		rival := &models.User{
			TenantID: "00000000-0000-0000-0000-000000000001",
			Username: input.AdminUserName,
			Email:    "rival@elsewhere.example.com",
			Password: "irrelevant-hash",
			IsActive: true,
		}
		if createErr := tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error; createErr != nil {
			t.Fatalf("plant rival admin: %v", createErr)
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Callback().Create().Remove("plant_rival_admin") })

	_, err = p.RegisterAgency(context.Background(), input)
	require.ErrorIs(t, err, ErrAdminCredentialsTaken)
	require.True(t, planted, "the rival insert never ran")

	// The unique violation aborts the transaction, so neither the new tenant
	// nor the rival row survives.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.Tenant{}).Count(&count).Error)
	require.Zero(t, count)
}
