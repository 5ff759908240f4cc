package festival

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
)

func TestRepository_GetActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM festivals WHERE is_active = $1 ORDER BY start_date DESC NULLS LAST LIMIT 1")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "available_buildings", "is_active"}).
			AddRow(1, start, nil, "{1,3}", true))

	f, err := repo.GetActive(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, f.AvailableBuildings)
	require.NotNil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActive_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM festivals")).WillReturnError(sql.ErrNoRows)

	_, err = repo.GetActive(context.Background())

	assert.ErrorIs(t, err, ErrFestivalNotFound)
}
