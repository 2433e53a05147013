package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/database"
	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/crypto"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
	"github.com/vigilohq/vigilo/pkg/metrics"
)

var (
	// ErrAgencyExists reports a duplicate registration number or agency email.
	ErrAgencyExists = apperrors.NewConflict("AGENCY_EXISTS", "Agency with this registration number or email already exists")
	// ErrAdminCredentialsTaken reports that the requested admin username or email is already held by any user.
	ErrAdminCredentialsTaken = apperrors.NewConflict("ADMIN_CREDENTIALS_TAKEN", "Admin username or email is already in use")
)

const (
	defaultCountry        = "India"
	subscriptionTerm      = 365 * 24 * time.Hour
	defaultDepartmentName = "Administration"
)

// RegisterAgencyInput carries agency and admin-user details for provisioning.
type RegisterAgencyInput struct {
	CompanyName        string
	RegistrationNumber string
	Email              string
	Phone              string
	AddressLine        string
	City               string
	State              string
	Country            string
	PostalCode         string

	AdminUserName  string
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string
	AdminPhone     string
}

// RegisterAgencyResult is returned after a successful registration.
type RegisterAgencyResult struct {
	TenantID      string `json:"tenant_id"`
	CompanyName   string `json:"company_name"`
	AdminUserID   string `json:"admin_user_id"`
	AdminUsername string `json:"admin_username"`
	Message       string `json:"message"`
}

// Provisioner bootstraps new agency tenants from the seed catalog.
type Provisioner struct {
	db    *gorm.DB
	audit *services.AuditService
	now   func() time.Time
}

// Option customises the Provisioner.
type Option func(*Provisioner)

// WithNow overrides the clock, primarily for testing subscription windows.
func WithNow(now func() time.Time) Option {
	return func(p *Provisioner) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProvisioner constructs a Provisioner instance.
func NewProvisioner(db *gorm.DB, audit *services.AuditService, opts ...Option) (*Provisioner, error) {
	if db == nil {
		return nil, errors.New("provisioner: db is required")
	}

	p := &Provisioner{db: db, audit: audit, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RegisterAgency provisions a fully operational tenant: the tenant record,
// the global permission catalog (seeded once system-wide), the four system
// roles, the default department, the admin user, the navigation tree, and
// the per-role grants. The whole sequence runs in a single transaction, so a
// failure at any step leaves no partial agency behind.
func (p *Provisioner) RegisterAgency(ctx context.Context, input RegisterAgencyInput) (*RegisterAgencyResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	in := normaliseInput(input)

	// Hash before opening the transaction; bcrypt is deliberately slow.
	hashed, err := crypto.HashPassword(in.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("provisioner: hash admin password: %w", err)
	}

	var result *RegisterAgencyResult

	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).
			Where("registration_number = ? OR email = ?", in.RegistrationNumber, in.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("provisioner: check existing agencies: %w", err)
		}
		if count > 0 {
			return ErrAgencyExists
		}

		// No tenant scoping here: usernames and emails are unique system-wide.
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", in.AdminUserName, in.AdminEmail).
			Count(&count).Error; err != nil {
			return fmt.Errorf("provisioner: check existing users: %w", err)
		}
		if count > 0 {
			return ErrAdminCredentialsTaken
		}

		now := p.now()
		tenant := &models.Tenant{
			CompanyName:        in.CompanyName,
			RegistrationNumber: in.RegistrationNumber,
			Email:              in.Email,
			Phone:              in.Phone,
			AddressLine:        in.AddressLine,
			City:               in.City,
			State:              in.State,
			Country:            in.Country,
			PostalCode:         in.PostalCode,
			SubscriptionStart:  now,
			SubscriptionEnd:    now.Add(subscriptionTerm),
			IsActive:           true,
		}
		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("provisioner: create tenant: %w", err)
		}

		perms, err := ensurePermissions(tx)
		if err != nil {
			return err
		}

		roles, err := createRoles(tx, tenant.ID)
		if err != nil {
			return err
		}

		adminRole := roles[RoleAdmin]
		if err := appendAssociation(tx, adminRole, "Permissions", permissionRefs(perms)); err != nil {
			return fmt.Errorf("provisioner: grant permissions to administrator: %w", err)
		}

		dept := &models.Department{
			TenantID:    tenant.ID,
			Name:        defaultDepartmentName,
			Description: "Default department created during onboarding",
			IsDefault:   true,
		}
		if err := tx.Create(dept).Error; err != nil {
			return fmt.Errorf("provisioner: create default department: %w", err)
		}

		admin := &models.User{
			TenantID:      tenant.ID,
			Username:      in.AdminUserName,
			Email:         in.AdminEmail,
			Password:      hashed,
			FirstName:     in.AdminFirstName,
			LastName:      in.AdminLastName,
			Phone:         in.AdminPhone,
			DepartmentID:  &dept.ID,
			IsActive:      true,
			EmailVerified: false,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("provisioner: create admin user: %w", err)
		}

		if err := tx.Model(admin).Association("Roles").Append(adminRole); err != nil {
			return fmt.Errorf("provisioner: assign administrator role: %w", err)
		}

		menus, subMenus, err := createNavigation(tx, tenant.ID)
		if err != nil {
			return err
		}

		if err := applyGrants(tx, roles, menus, subMenus); err != nil {
			return err
		}

		result = &RegisterAgencyResult{
			TenantID:      tenant.ID,
			CompanyName:   tenant.CompanyName,
			AdminUserID:   admin.ID,
			AdminUsername: admin.Username,
			Message:       "Agency registered successfully",
		}
		return nil
	})
	if err != nil {
		// The pre-checks race against concurrent registrations; unique
		// indexes are the backstop and map onto the same failures.
		if database.IsUniqueConstraintError(err) {
			metrics.AgencyRegistrations.WithLabelValues("duplicate").Inc()
			if strings.Contains(strings.ToLower(err.Error()), "users") {
				return nil, ErrAdminCredentialsTaken
			}
			return nil, ErrAgencyExists
		}
		if errors.Is(err, ErrAgencyExists) || errors.Is(err, ErrAdminCredentialsTaken) {
			metrics.AgencyRegistrations.WithLabelValues("duplicate").Inc()
		} else {
			metrics.AgencyRegistrations.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.AgencyRegistrations.WithLabelValues("success").Inc()
	p.recordAudit(ctx, result)
	return result, nil
}

// ensurePermissions seeds the global catalog when the permission table is
// empty, and otherwise returns the existing rows untouched.
func ensurePermissions(tx *gorm.DB) ([]models.Permission, error) {
	var count int64
	if err := tx.Model(&models.Permission{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("provisioner: count permissions: %w", err)
	}

	if count == 0 {
		seeds := make([]models.Permission, 0, len(Permissions))
		for _, seed := range Permissions {
			seeds = append(seeds, models.Permission{
				Resource:    seed.Resource,
				Action:      seed.Action,
				Description: seed.Description,
			})
		}
		if err := tx.Create(&seeds).Error; err != nil {
			return nil, fmt.Errorf("provisioner: seed permissions: %w", err)
		}
	}

	var perms []models.Permission
	if err := tx.Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("provisioner: load permissions: %w", err)
	}
	return perms, nil
}

func createRoles(tx *gorm.DB, tenantID string) (map[string]*models.Role, error) {
	roles := make(map[string]*models.Role, len(Roles))
	for _, seed := range Roles {
		role := &models.Role{
			TenantID:    tenantID,
			Code:        seed.Code,
			Name:        seed.Name,
			Description: seed.Description,
			IsSystem:    true,
		}
		if err := tx.Create(role).Error; err != nil {
			return nil, fmt.Errorf("provisioner: create role %s: %w", seed.Code, err)
		}
		roles[seed.Code] = role
	}
	return roles, nil
}

func createNavigation(tx *gorm.DB, tenantID string) (map[string]*models.Menu, map[string]*models.SubMenu, error) {
	menus := make(map[string]*models.Menu, len(Menus))
	subMenus := make(map[string]*models.SubMenu)

	for _, seed := range Menus {
		menu := &models.Menu{
			TenantID:     tenantID,
			Code:         seed.Code,
			Name:         seed.Name,
			Icon:         seed.Icon,
			Route:        seed.Route,
			DisplayOrder: seed.DisplayOrder,
		}
		if err := tx.Create(menu).Error; err != nil {
			return nil, nil, fmt.Errorf("provisioner: create menu %s: %w", seed.Code, err)
		}
		menus[seed.Code] = menu

		for _, subSeed := range seed.SubMenus {
			subMenu := &models.SubMenu{
				TenantID:     tenantID,
				MenuID:       menu.ID,
				Code:         subSeed.Code,
				Name:         subSeed.Name,
				Icon:         subSeed.Icon,
				Route:        subSeed.Route,
				DisplayOrder: subSeed.DisplayOrder,
			}
			if err := tx.Create(subMenu).Error; err != nil {
				return nil, nil, fmt.Errorf("provisioner: create submenu %s: %w", subSeed.Code, err)
			}
			subMenus[subSeed.Code] = subMenu
		}
	}

	return menus, subMenus, nil
}

func applyGrants(tx *gorm.DB, roles map[string]*models.Role, menus map[string]*models.Menu, subMenus map[string]*models.SubMenu) error {
	for code, role := range roles {
		grant, ok := Grants[code]
		if !ok {
			continue
		}

		menuRefs := resolveMenus(grant, menus)
		subMenuRefs := resolveSubMenus(grant, subMenus)

		if err := appendAssociation(tx, role, "Menus", menuRefs); err != nil {
			return fmt.Errorf("provisioner: grant menus to %s: %w", code, err)
		}
		if err := appendAssociation(tx, role, "SubMenus", subMenuRefs); err != nil {
			return fmt.Errorf("provisioner: grant submenus to %s: %w", code, err)
		}
	}
	return nil
}

func resolveMenus(grant RoleGrant, menus map[string]*models.Menu) []any {
	if grant.AllMenus {
		refs := make([]any, 0, len(menus))
		for _, seed := range Menus { // deterministic catalog order
			refs = append(refs, menus[seed.Code])
		}
		return refs
	}

	refs := make([]any, 0, len(grant.Menus))
	for _, code := range grant.Menus {
		if menu, ok := menus[code]; ok {
			refs = append(refs, menu)
		}
	}
	return refs
}

func resolveSubMenus(grant RoleGrant, subMenus map[string]*models.SubMenu) []any {
	var refs []any
	seen := make(map[string]struct{})

	add := func(code string) {
		if _, dup := seen[code]; dup {
			return
		}
		if subMenu, ok := subMenus[code]; ok {
			seen[code] = struct{}{}
			refs = append(refs, subMenu)
		}
	}

	for _, seed := range Menus {
		includeAll := grant.AllSubMenus || containsString(grant.SubMenusOf, seed.Code)
		for _, subSeed := range seed.SubMenus {
			if includeAll {
				add(subSeed.Code)
			}
		}
	}
	for _, code := range grant.ExtraSubMenus {
		add(code)
	}

	return refs
}

func appendAssociation(tx *gorm.DB, model any, name string, refs []any) error {
	if len(refs) == 0 {
		return nil
	}
	return tx.Model(model).Association(name).Append(refs...)
}

func permissionRefs(perms []models.Permission) []any {
	refs := make([]any, len(perms))
	for i := range perms {
		refs[i] = &perms[i]
	}
	return refs
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func normaliseInput(in RegisterAgencyInput) RegisterAgencyInput {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.AddressLine = strings.TrimSpace(in.AddressLine)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.PostalCode = strings.TrimSpace(in.PostalCode)

	in.Country = strings.TrimSpace(in.Country)
	if in.Country == "" {
		in.Country = defaultCountry
	}

	in.AdminUserName = strings.TrimSpace(in.AdminUserName)
	in.AdminEmail = strings.ToLower(strings.TrimSpace(in.AdminEmail))
	in.AdminFirstName = strings.TrimSpace(in.AdminFirstName)
	in.AdminLastName = strings.TrimSpace(in.AdminLastName)
	in.AdminPhone = strings.TrimSpace(in.AdminPhone)

	return in
}

func (p *Provisioner) recordAudit(ctx context.Context, result *RegisterAgencyResult) {
	if p.audit == nil || result == nil {
		return
	}
	_ = p.audit.Log(ctx, services.AuditEntry{
		Action:   "agency.register",
		Resource: result.TenantID,
		Result:   "success",
		Metadata: map[string]any{
			"company_name":   result.CompanyName,
			"admin_user_id":  result.AdminUserID,
			"admin_username": result.AdminUsername,
		},
	})
}
