package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAttendanceCheckInAndOut(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAttendanceService(db, nil)
	require.NoError(t, err)

	ctx := tenantContext("tenant-1")
	guard := createTestGuard(t, db, "tenant-1", "G-001", 18)
	site := createTestSite(t, db, "tenant-1", "Harbour Gate")

	record, err := svc.CheckIn(ctx, CheckInInput{GuardID: guard.ID, SiteID: site.ID})
	require.NoError(t, err)
	require.Nil(t, record.CheckOutAt)

	// A second check-in while the shift is open must be rejected.
	_, err = svc.CheckIn(ctx, CheckInInput{GuardID: guard.ID, SiteID: site.ID})
	require.ErrorIs(t, err, ErrShiftAlreadyOpen)

	closed, err := svc.CheckOut(ctx, guard.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.CheckOutAt)
	require.False(t, closed.AutoClosed)

	// Once closed, checking out again fails and checking in succeeds.
	_, err = svc.CheckOut(ctx, guard.ID)
	require.ErrorIs(t, err, ErrNoOpenShift)

	_, err = svc.CheckIn(ctx, CheckInInput{GuardID: guard.ID, SiteID: site.ID})
	require.NoError(t, err)
}

func TestAttendanceCheckIn_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAttendanceService(db, nil)
	require.NoError(t, err)

	_, err = svc.CheckIn(tenantContext("tenant-1"), CheckInInput{GuardID: "", SiteID: "site-1"})
	require.Error(t, err)
}

func TestAttendanceAutoCloseStale(t *testing.T) {
	db := setupTestDB(t)
	svc, err := NewAttendanceService(db, nil)
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	ctx := tenantContext("tenant-1")
	guard := createTestGuard(t, db, "tenant-1", "G-001", 18)
	site := createTestSite(t, db, "tenant-1", "Harbour Gate")

	svc.now = func() time.Time { return base }
	stale, err := svc.CheckIn(ctx, CheckInInput{GuardID: guard.ID, SiteID: site.ID})
	require.NoError(t, err)

	// Two days later the sweep closes the forgotten shift.
	svc.now = func() time.Time { return base.Add(48 * time.Hour) }
	closed, err := svc.AutoCloseStale(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), closed)

	history, err := svc.ListForGuard(ctx, guard.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].CheckOutAt)
	require.True(t, history[0].AutoClosed)
	require.Equal(t, stale.ID, history[0].ID)

	// A fresh shift is untouched by a subsequent sweep.
	_, err = svc.CheckIn(ctx, CheckInInput{GuardID: guard.ID, SiteID: site.ID})
	require.NoError(t, err)
	closed, err = svc.AutoCloseStale(ctx)
	require.NoError(t, err)
	require.Zero(t, closed)
}
