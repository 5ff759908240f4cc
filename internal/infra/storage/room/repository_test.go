package room

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
	"github.com/m04kA/FestAccommodationService/pkg/ptr"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, building, floor, number, capacity, description FROM fest_rooms WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, 2, 3, 305, 4, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM fest_rooms WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)

	room, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, room.Capacity)
	assert.Equal(t, "", room.Description)

	_, err = repo.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Filters(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM fest_rooms WHERE floor = $1 AND building IN ($2,$3) ORDER BY building ASC, floor ASC, number ASC",
	)).
		WithArgs(2, 1, 3).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 1, 2, 201, 3, "у окна").
			AddRow(2, 3, 2, 210, 2, ""))

	rooms, err := repo.List(context.Background(), domain.RoomFilter{Floor: ptr.Ptr(2), Buildings: []int{1, 3}})

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "у окна", rooms[0].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE fest_rooms SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &domain.Room{ID: 9, Capacity: 2})

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRepository_Update_LocationTaken(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE fest_rooms SET building = $1, floor = $2, number = $3")).
		WithArgs(2, 1, 105, 3, "", int64(9)).
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	_, err := repo.Update(context.Background(), &domain.Room{ID: 9, Building: 2, Floor: 1, Number: 105, Capacity: 3})

	assert.ErrorIs(t, err, ErrRoomExists)
}

func TestRepository_Delete_InUse(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fest_rooms WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: pgForeignKeyViolation})

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), ErrRoomInUse)
}
