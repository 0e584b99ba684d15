package postgresql_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checkInAt = time.Date(2025, 7, 14, 3, 30, 0, 0, time.UTC)

func checkIn(employeeID int64, date string) attendance.CheckIn {
	return attendance.CheckIn{EmployeeID: employeeID, Date: date, CheckInTime: "09:00:00 AM", CheckInAt: checkInAt}
}

func checkOut(employeeID int64, date string) attendance.CheckOut {
	return attendance.CheckOut{
		EmployeeID:    employeeID,
		Date:          date,
		CheckOutTime:  "06:00:00 PM",
		CheckOutAt:    checkInAt.Add(9 * time.Hour),
		WorkedMinutes: 540,
		Status:        attendance.StatusPresent,
	}
}

func TestAttendanceRepository_Lifecycle(t *testing.T) {
	repo := postgresql.NewAttendanceRepository(newTestDB(t))
	ctx := context.Background()

	rec, err := repo.FindByEmployeeAndDate(ctx, 1, "2025-07-14")
	require.NoError(t, err)
	assert.Nil(t, rec)

	opened, err := repo.CreateCheckIn(ctx, checkIn(1, "2025-07-14"))
	require.NoError(t, err)
	assert.True(t, opened.IsOpen())
	assert.Equal(t, "2025-07-14", opened.Date)

	_, err = repo.CreateCheckIn(ctx, checkIn(1, "2025-07-14"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyOpen)

	// Another date may be opened while 07-14 is still open.
	next, err := repo.CreateCheckIn(ctx, checkIn(1, "2025-07-15"))
	require.NoError(t, err)
	assert.True(t, next.IsOpen())

	closed, err := repo.CloseCheckOut(ctx, checkOut(1, "2025-07-14"))
	require.NoError(t, err)
	assert.Equal(t, "9 hrs 0 mins", *closed.TotalHours())
	assert.Equal(t, attendance.StatusPresent, closed.Status)

	_, err = repo.CloseCheckOut(ctx, checkOut(1, "2025-07-14"))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = repo.CreateCheckIn(ctx, checkIn(1, "2025-07-14"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClosed)
}

func TestAttendanceRepository_UpsertAbsent(t *testing.T) {
	repo := postgresql.NewAttendanceRepository(newTestDB(t))
	ctx := context.Background()

	inserted, err := repo.UpsertAbsent(ctx, 2, "2025-07-14")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.UpsertAbsent(ctx, 2, "2025-07-14")
	require.NoError(t, err)
	assert.False(t, inserted)

	promoted, err := repo.CreateCheckIn(ctx, checkIn(2, "2025-07-14"))
	require.NoError(t, err)
	assert.True(t, promoted.IsOpen())

	inserted, err = repo.UpsertAbsent(ctx, 2, "2025-07-14")
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	repo := postgresql.NewAttendanceRepository(newTestDB(t))

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.CreateCheckIn(context.Background(), checkIn(7, "2025-07-14")); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestAttendanceRepository_Queries(t *testing.T) {
	repo := postgresql.NewAttendanceRepository(newTestDB(t))
	ctx := context.Background()

	for _, date := range []string{"2025-07-16", "2025-07-14", "2025-08-01"} {
		_, err := repo.CreateCheckIn(ctx, checkIn(1, date))
		require.NoError(t, err)
		_, err = repo.CloseCheckOut(ctx, checkOut(1, date))
		require.NoError(t, err)
	}
	_, err := repo.UpsertAbsent(ctx, 2, "2025-07-14")
	require.NoError(t, err)
	_, err = repo.CreateCheckIn(ctx, checkIn(3, "2025-07-10"))
	require.NoError(t, err)

	july, err := repo.QueryByMonth(ctx, 2025, 7, nil)
	require.NoError(t, err)
	assert.Len(t, july, 4)

	onlyTwo, err := repo.QueryByMonth(ctx, 2025, 7, []int64{2})
	require.NoError(t, err)
	assert.Len(t, onlyTwo, 1)

	present, err := repo.QueryByStatusAndMonth(ctx, 1, attendance.StatusPresent, 2025, 7)
	require.NoError(t, err)
	assert.Len(t, present, 2)

	count, err := repo.CountByStatusAndMonth(ctx, attendance.StatusPresent, 2025, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stale, err := repo.ListOpenBefore(ctx, "2025-07-14")
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, int64(3), stale[0].EmployeeID)
}
