package attachment

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

const table = "fest_placement_children"

const pgUniqueViolation = "23505"

var columns = []string{"id", "placement_id", "child_registration_id", "created_at"}

// Repository связи "ребенок без отдельной кровати - размещение родителя"
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create привязывает ребенка к размещению
func (r *Repository) Create(ctx context.Context, a *domain.ChildAttachment) (*domain.ChildAttachment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("placement_id", "child_registration_id").
		Values(a.PlacementID, a.ChildRegistrationID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyAttached
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// ListByPlacementIDs возвращает детей, привязанных к размещениям
func (r *Repository) ListByPlacementIDs(ctx context.Context, placementIDs []int64) ([]*domain.ChildAttachment, error) {
	if len(placementIDs) == 0 {
		return []*domain.ChildAttachment{}, nil
	}
	return r.list(ctx, "ListByPlacementIDs", squirrel.Eq{"placement_id": placementIDs})
}

// ListByChildRegistrationIDs возвращает привязки указанных детей
func (r *Repository) ListByChildRegistrationIDs(ctx context.Context, childIDs []int64) ([]*domain.ChildAttachment, error) {
	if len(childIDs) == 0 {
		return []*domain.ChildAttachment{}, nil
	}
	return r.list(ctx, "ListByChildRegistrationIDs", squirrel.Eq{"child_registration_id": childIDs})
}

// DeleteByPlacement отвязывает всех детей от размещения
func (r *Repository) DeleteByPlacement(ctx context.Context, placementID int64) (int64, error) {
	return r.delete(ctx, "DeleteByPlacement", squirrel.Eq{"placement_id": placementID})
}

// DeleteByChild убирает все привязки ребенка
func (r *Repository) DeleteByChild(ctx context.Context, childRegistrationID int64) (int64, error) {
	return r.delete(ctx, "DeleteByChild", squirrel.Eq{"child_registration_id": childRegistrationID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.ChildAttachment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	attachments := make([]*domain.ChildAttachment, 0)
	for rows.Next() {
		var a domain.ChildAttachment
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.PlacementID, &a.ChildRegistrationID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		a.CreatedAt = createdAt.Time
		attachments = append(attachments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return attachments, nil
}

func (r *Repository) delete(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	return deleted, nil
}
