package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/pkg/crypto"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
)

func createTestUser(t *testing.T, db *gorm.DB, tenantID, username, password string) *models.User {
	t.Helper()

	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		TenantID: tenantID,
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewUserService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	createTestUser(t, db, "tenant-1", "admin", "s3cret-pass")

	user, err := svc.Authenticate(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)
	require.NotNil(t, user.LastLoginAt)

	// Email works as the login identifier too.
	user, err = svc.Authenticate(ctx, "admin@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)
}

func TestUserAuthenticate_Failures(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewUserService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	user := createTestUser(t, db, "tenant-1", "admin", "s3cret-pass")

	_, err = svc.Authenticate(ctx, "admin", "wrong-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "s3cret-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Disabled accounts fail the same way as bad passwords.
	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	_, err = svc.Authenticate(ctx, "admin", "s3cret-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewUserService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	user := createTestUser(t, db, "tenant-1", "admin", "s3cret-pass")

	err = svc.ChangePassword(ctx, user.ID, "wrong-pass", "brand-new-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, user.ID, "s3cret-pass", "short")
	require.Error(t, err)

	err = svc.ChangePassword(ctx, user.ID, "s3cret-pass", "brand-new-pass")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "admin", "brand-new-pass")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "admin", "s3cret-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserSetRoles(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewUserService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	user := createTestUser(t, db, "tenant-1", "admin", "s3cret-pass")

	roles := []models.Role{
		{TenantID: "tenant-1", Code: "GUARD", Name: "Guard", IsSystem: true},
		{TenantID: "tenant-1", Code: "SUPERVISOR", Name: "Supervisor", IsSystem: true},
	}
	require.NoError(t, db.Create(&roles).Error)

	updated, err := svc.SetRoles(ctx, user.ID, []string{"GUARD", "SUPERVISOR"})
	require.NoError(t, err)
	require.Len(t, updated.Roles, 2)

	// Replacing drops previous assignments.
	updated, err = svc.SetRoles(ctx, user.ID, []string{"GUARD"})
	require.NoError(t, err)
	require.Len(t, updated.Roles, 1)
	require.Equal(t, "GUARD", updated.Roles[0].Code)

	_, err = svc.SetRoles(ctx, user.ID, []string{"NO_SUCH_ROLE"})
	require.Error(t, err)
}

func TestUserList_TenantScoped(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewUserService(db, nil)
	require.NoError(t, err)

	createTestUser(t, db, "tenant-1", "alice", "s3cret-pass")
	createTestUser(t, db, "tenant-2", "bob", "s3cret-pass")

	users, total, err := svc.List(tenantContext("tenant-1"), UserFilters{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Username)
}
