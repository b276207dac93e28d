package availability

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func availabilityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "headline", "start_date", "start_time", "duration_hours",
		"max_capacity", "online_status", "private_note", "pickup_route_id",
		"vehicle_id", "staff_ids", "customer_type_id", "pricing_schedule_id",
		"option_schedule_id", "created_at", "updated_at",
	})
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	startDate := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := availabilityRows().AddRow(
		int64(42), "Sunset Cruise", startDate, "18:30", 2.5,
		20, "open", nil, nil,
		nil, "{7,9}", nil, int64(5),
		nil, now, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, headline, start_date, start_time, duration_hours, max_capacity, online_status, private_note, pickup_route_id, vehicle_id, staff_ids, customer_type_id, pricing_schedule_id, option_schedule_id, created_at, updated_at FROM availabilities WHERE id = $1",
	)).WithArgs(int64(42)).WillReturnRows(rows)

	av, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), av.ID)
	assert.Equal(t, "Sunset Cruise", av.Headline)
	assert.Equal(t, 20, av.MaxCapacity)
	assert.Equal(t, domain.OnlineOpen, av.OnlineStatus)
	require.NotNil(t, av.StartTime)
	assert.Equal(t, "18:30", av.StartTime.String())
	assert.Equal(t, []int64{7, 9}, av.StaffIDs)
	require.NotNil(t, av.PricingScheduleID)
	assert.Equal(t, int64(5), *av.PricingScheduleID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT .+ FROM availabilities WHERE id = ").
		WithArgs(int64(404)).
		WillReturnRows(availabilityRows())

	_, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIDs_NoFilters(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id FROM availabilities ORDER BY id ASC",
	)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	ids, err := repo.ListIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListIDs_FiltersCombineWithAnd(t *testing.T) {
	repo, mock := newMockRepository(t)

	filters := domain.NewFilterSet()
	filters.Add(domain.OnlineStatusFilter{Statuses: []domain.OnlineStatus{domain.OnlineOpen}})
	min := 10
	filters.Add(domain.CapacityFilter{Min: &min})

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id FROM availabilities WHERE online_status IN ($1) AND max_capacity >= $2 ORDER BY id ASC",
	)).WithArgs("open", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	ids, err := repo.ListIDs(context.Background(), filters)

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdate(t *testing.T) {
	repo, mock := newMockRepository(t)

	patch := domain.FieldPatch{
		domain.PatchMaxCapacity:  25,
		domain.PatchOnlineStatus: "closed",
	}

	// Поля patch отсортированы: max_capacity перед online_status
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE availabilities SET updated_at = NOW(), max_capacity = $1, online_status = $2 WHERE id IN ($3,$4)",
	)).WithArgs(25, "closed", int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.BulkUpdate(context.Background(), []int64{1, 2}, patch)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdate_ExplicitNullClearsField(t *testing.T) {
	repo, mock := newMockRepository(t)

	patch := domain.FieldPatch{
		domain.PatchStartTime: nil,
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE availabilities SET updated_at = NOW(), start_time = $1 WHERE id IN ($2)",
	)).WithArgs(nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.BulkUpdate(context.Background(), []int64{1}, patch)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdate_StaffMergeAppendsWithoutDuplicates(t *testing.T) {
	repo, mock := newMockRepository(t)

	patch := domain.FieldPatch{
		domain.PatchStaffIDs: domain.StaffPatch{StaffIDs: []int64{7, 9}, Merge: true},
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE availabilities SET updated_at = NOW(), staff_ids = ARRAY(SELECT DISTINCT unnest(COALESCE(staff_ids, '{}') || $1::bigint[]) ORDER BY 1) WHERE id IN ($2,$3)",
	)).WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.BulkUpdate(context.Background(), []int64{1, 2}, patch)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdate_EmptyPatchRejected(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.BulkUpdate(context.Background(), []int64{1}, domain.FieldPatch{})

	assert.ErrorIs(t, err, ErrEmptyPatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkDelete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM availabilities WHERE id IN ($1,$2,$3)",
	)).WithArgs(int64(1), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.BulkDelete(context.Background(), []int64{1, 2, 3})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM availabilities WHERE id = $1",
	)).WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)

	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
