package attachment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fest_placement_children (placement_id,child_registration_id) VALUES ($1,$2)")).
		WithArgs(int64(5), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fest_placement_children")).
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	a, err := repo.Create(context.Background(), &domain.ChildAttachment{PlacementID: 5, ChildRegistrationID: 11})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	_, err = repo.Create(context.Background(), &domain.ChildAttachment{PlacementID: 5, ChildRegistrationID: 11})
	assert.ErrorIs(t, err, ErrAlreadyAttached)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByPlacementIDs(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fest_placement_children WHERE placement_id IN ($1,$2) ORDER BY id ASC")).
		WithArgs(int64(5), int64(6)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 5, 11, time.Now()).
			AddRow(2, 6, 12, time.Now()))

	list, err := repo.ListByPlacementIDs(context.Background(), []int64{5, 6})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := repo.ListByPlacementIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByChild(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fest_placement_children WHERE child_registration_id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteByChild(context.Background(), 11)

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
