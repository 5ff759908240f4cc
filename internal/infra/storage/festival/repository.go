package festival

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
	"github.com/m04kA/FestAccommodationService/pkg/psqlbuilder"
)

const table = "festivals"

// Repository сведения об активном фестивале
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive возвращает активный фестиваль (последний по дате начала, если их несколько)
func (r *Repository) GetActive(ctx context.Context) (*domain.Festival, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_date", "end_date", "available_buildings", "is_active").
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("start_date DESC NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.Festival
	var startDate, endDate sql.NullTime
	var buildings pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&f.ID, &startDate, &endDate, &buildings, &f.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFestivalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan festival: %w", ErrScanRow, err)
	}

	if startDate.Valid {
		f.StartDate = &startDate.Time
	}
	if endDate.Valid {
		f.EndDate = &endDate.Time
	}
	f.AvailableBuildings = make([]int, 0, len(buildings))
	for _, b := range buildings {
		f.AvailableBuildings = append(f.AvailableBuildings, int(b))
	}

	return &f, nil
}
