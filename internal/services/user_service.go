package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/pkg/crypto"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
	"github.com/vigilohq/vigilo/pkg/metrics"
)

// ErrUserNotFound is returned when a user does not exist within the tenant.
var ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", 404)

// UserFilters narrows user listings.
type UserFilters struct {
	Query        string
	DepartmentID string
	Active       *bool
	Page         int
	PageSize     int
}

// UserService manages tenant users and credential checks.
type UserService struct {
	db           *gorm.DB
	auditService *AuditService
	now          func() time.Time
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB, auditService *AuditService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db, auditService: auditService, now: time.Now}, nil
}

// Authenticate verifies a username (or email) and password pair and returns
// the user with roles preloaded. Credential failures are indistinguishable
// from unknown users.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	ctx = ensureContext(ctx)

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	if !user.IsActive || !crypto.VerifyPassword(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		recordAudit(s.auditService, ctx, AuditEntry{
			TenantID: user.TenantID,
			Username: user.Username,
			Action:   "auth.login",
			Result:   "failure",
		})
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("user service: stamp login: %w", err)
	}
	user.LastLoginAt = &now

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		TenantID: user.TenantID,
		UserID:   &user.ID,
		Username: user.Username,
		Action:   "auth.login",
		Result:   "success",
	})

	return &user, nil
}

// GetByID returns a tenant user with roles and department preloaded.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Preload("Roles").
		Preload("Department").
		Where("tenant_id = ? AND id = ?", tenantID, strings.TrimSpace(userID)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}
	return &user, nil
}

// List returns tenant users, paginated.
func (s *UserService) List(ctx context.Context, filters UserFilters) ([]models.User, int64, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Model(&models.User{}).Where("tenant_id = ?", tenantID)
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if departmentID := strings.TrimSpace(filters.DepartmentID); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	if filters.Active != nil {
		query = query.Where("is_active = ?", *filters.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: count users: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}

	var users []models.User
	if err := query.
		Preload("Roles").
		Order("username ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: list users: %w", err)
	}

	return users, total, nil
}

// SetRoles replaces a user's role assignments with the given role codes.
// Codes must name roles belonging to the tenant.
func (s *UserService) SetRoles(ctx context.Context, userID string, roleCodes []string) (*models.User, error) {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	codes := normaliseIDs(roleCodes)
	if len(codes) == 0 {
		return nil, apperrors.NewBadRequest("at least one role code is required")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var roles []models.Role
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND code IN ?", tenantID, codes).
		Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("user service: load roles: %w", err)
	}
	if len(roles) != len(codes) {
		return nil, apperrors.NewBadRequest("one or more role codes are unknown")
	}

	if err := s.db.WithContext(ctx).Model(user).Association("Roles").Replace(roles); err != nil {
		return nil, fmt.Errorf("user service: replace roles: %w", err)
	}
	user.Roles = roles

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "user.set_roles",
		Resource: user.ID,
		Result:   "success",
		Metadata: map[string]any{"roles": codes},
	})

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}

	if len(newPassword) < 8 {
		return apperrors.NewBadRequest("new password must be at least 8 characters")
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, strings.TrimSpace(userID)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("user service: load user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("user service: hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password", hash).Error; err != nil {
		return fmt.Errorf("user service: update password: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "user.change_password",
		Resource: user.ID,
		Result:   "success",
	})

	return nil
}

// SetActive enables or disables a tenant user.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	ctx = ensureContext(ctx)

	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("tenant_id = ? AND id = ?", tenantID, strings.TrimSpace(userID)).
		Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("user service: update active flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		Action:   "user.set_active",
		Resource: strings.TrimSpace(userID),
		Result:   "success",
		Metadata: map[string]any{"active": active},
	})

	return nil
}
