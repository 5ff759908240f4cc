package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
	"github.com/m04kA/FestAccommodationService/pkg/psqlbuilder"
)

const (
	childrenTable      = "fest_registration_children"
	registrationsTable = "fest_registrations"
)

var columns = []string{"c.id", "c.registration_id", "c.child_user_id", "c.needs_separate_bed"}

// Repository дети из регистраций на фестиваль
// Регистрациями владеет другая подсистема, здесь только чтение и флаг отдельной кровати
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает регистрацию ребенка; в транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ChildRegistration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(childrenTable + " c").
		Where(squirrel.Eq{"c.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	child, err := scanChild(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan child: %w", ErrScanRow, err)
	}

	return child, nil
}

// ListByIDs получает регистрации детей по списку ID
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.ChildRegistration, error) {
	if len(ids) == 0 {
		return []*domain.ChildRegistration{}, nil
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(childrenTable + " c").
		Where(squirrel.Eq{"c.id": ids}).
		OrderBy("c.id ASC")

	return r.list(ctx, "ListByIDs", selectBuilder)
}

// ListByParentUser дети, которых пользователь зарегистрировал на фестиваль
func (r *Repository) ListByParentUser(ctx context.Context, userID, festivalID int64) ([]*domain.ChildRegistration, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(childrenTable + " c").
		Join(registrationsTable + " r ON r.id = c.registration_id").
		Where(squirrel.Eq{"r.user_id": userID, "r.festival_id": festivalID}).
		OrderBy("c.id ASC")

	return r.list(ctx, "ListByParentUser", selectBuilder)
}

// SetNeedsSeparateBed обновляет флаг отдельной кровати
func (r *Repository) SetNeedsSeparateBed(ctx context.Context, id int64, value bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(childrenTable).
		Set("needs_separate_bed", value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetNeedsSeparateBed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetNeedsSeparateBed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetNeedsSeparateBed - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrChildNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.ChildRegistration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	children := make([]*domain.ChildRegistration, 0)
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return children, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(row rowScanner) (*domain.ChildRegistration, error) {
	var c domain.ChildRegistration
	if err := row.Scan(&c.ID, &c.RegistrationID, &c.ChildUserID, &c.NeedsSeparateBed); err != nil {
		return nil, err
	}
	return &c, nil
}
