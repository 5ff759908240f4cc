package placement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/dbmetrics"
	"github.com/m04kA/FestAccommodationService/pkg/psqlbuilder"
)

const table = "fest_placements"

// roomLockNamespace старшие 32 бита ключа advisory lock комнаты
const roomLockNamespace int64 = 0x46455354 // "FEST"

// pgExclusionViolation нарушение EXCLUDE-ограничения (пересечение интервалов в слоте)
const pgExclusionViolation = "23P01"

var columns = []string{
	"id",
	"room_id",
	"slot",
	"manager_id",
	"occupant_id",
	"status",
	"date_from",
	"date_to",
	"note",
	"parent_placement_id",
	"child_registration_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий размещений (Placement Ledger + Interval Index в БД)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория размещений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает размещение
// Проверку пересечений выполняет вызывающий код; EXCLUDE-ограничение в схеме
// страхует от гонки и превращается в ErrSlotConflict
func (r *Repository) Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"room_id",
			"slot",
			"manager_id",
			"occupant_id",
			"status",
			"date_from",
			"date_to",
			"note",
			"parent_placement_id",
			"child_registration_id",
		).
		Values(
			p.RoomID,
			p.Slot,
			p.ManagerID,
			p.OccupantID,
			p.Status,
			p.DateFrom,
			p.DateTo,
			p.Note,
			p.ParentPlacementID,
			p.ChildRegistrationID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает размещение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Placement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPlacement(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlacementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan placement: %w", ErrScanRow, err)
	}

	return p, nil
}

// Update сохраняет изменяемые поля размещения
func (r *Repository) Update(ctx context.Context, p *domain.Placement) (*domain.Placement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("room_id", p.RoomID).
		Set("slot", p.Slot).
		Set("manager_id", p.ManagerID).
		Set("occupant_id", p.OccupantID).
		Set("status", p.Status).
		Set("date_from", p.DateFrom).
		Set("date_to", p.DateTo).
		Set("note", p.Note).
		Set("parent_placement_id", p.ParentPlacementID).
		Set("child_registration_id", p.ChildRegistrationID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlacementNotFound
	}
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return p, nil
}

// Delete удаляет размещение
// Связи с детьми удаляются каскадом в БД; детские размещения - забота вызывающего кода
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPlacementNotFound
	}

	return nil
}

// FindOverlapping возвращает размещения комнаты, интервал которых пересекается с q.Interval
// Если q.Slot не задан - по всем слотам комнаты (для поиска свободного слота)
// Размещения без одной из дат в выборку не попадают
func (r *Repository) FindOverlapping(ctx context.Context, q domain.OverlapQuery) ([]*domain.Placement, error) {
	if !q.Interval.IsBounded() {
		return []*domain.Placement{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": q.RoomID}).
		Where(overlaps(q.Interval))

	if q.Slot != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot": *q.Slot})
	}
	if len(q.ExcludeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": q.ExcludeIDs})
	}

	selectBuilder = selectBuilder.OrderBy("slot ASC", "date_from ASC")

	// В транзакции блокируем найденные строки до конца размещения
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPlacements(rows)
}

// List получает размещения по фильтру
// Сортировка как в админке: по дате заезда, затем выезда
func (r *Repository) List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if len(filter.IDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": filter.IDs})
	}
	if len(filter.RoomIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": filter.RoomIDs})
	}
	if filter.OccupantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"occupant_id": *filter.OccupantID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ExcludeStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": *filter.ExcludeStatus})
	}
	if filter.ParentPlacementID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"parent_placement_id": *filter.ParentPlacementID})
	}
	if filter.ChildRegistrationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"child_registration_id": *filter.ChildRegistrationID})
	}

	switch {
	case filter.DateFrom != nil && filter.DateTo != nil:
		selectBuilder = selectBuilder.Where(overlaps(domain.NewInterval(filter.DateFrom, filter.DateTo)))
	case filter.DateFrom != nil:
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.GtOrEq{"date_from": *filter.DateFrom},
			squirrel.GtOrEq{"date_to": *filter.DateFrom},
		})
	case filter.DateTo != nil:
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.LtOrEq{"date_from": *filter.DateTo},
			squirrel.LtOrEq{"date_to": *filter.DateTo},
		})
	}

	selectBuilder = selectBuilder.OrderBy("date_from ASC NULLS LAST", "date_to ASC NULLS LAST", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPlacements(rows)
}

// LockRoom берет транзакционную advisory-блокировку комнаты
// Все размещения в одной комнате выполняются последовательно; блокировка снимается при commit/rollback
func (r *Repository) LockRoom(ctx context.Context, roomID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", roomLockKey(roomID)); err != nil {
		return fmt.Errorf("%w: LockRoom - room_id=%d: %w", ErrExecQuery, roomID, err)
	}

	return nil
}

// overlaps единственное условие пересечения интервалов, используемое всеми запросами:
// date_from <= to AND date_to >= from, строки без одной из дат не пересекаются ни с чем
func overlaps(iv domain.Interval) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.NotEq{"date_from": nil},
		squirrel.NotEq{"date_to": nil},
		squirrel.LtOrEq{"date_from": *iv.To},
		squirrel.GtOrEq{"date_to": *iv.From},
	}
}

func roomLockKey(roomID int64) int64 {
	return roomLockNamespace<<32 | (roomID & 0xffffffff)
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlacement(row rowScanner) (*domain.Placement, error) {
	var p domain.Placement
	var createdAt, updatedAt sql.NullTime
	var dateFrom, dateTo sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.RoomID,
		&p.Slot,
		&p.ManagerID,
		&p.OccupantID,
		&p.Status,
		&dateFrom,
		&dateTo,
		&p.Note,
		&p.ParentPlacementID,
		&p.ChildRegistrationID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.DateFrom = nullTimePtr(dateFrom)
	p.DateTo = nullTimePtr(dateTo)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// scanPlacements сканирует результаты запроса в слайс размещений
func scanPlacements(rows *sql.Rows) ([]*domain.Placement, error) {
	placements := make([]*domain.Placement, 0)

	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPlacements - scan row: %w", ErrScanRow, err)
		}
		placements = append(placements, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPlacements - rows error: %w", ErrScanRow, err)
	}

	return placements, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
