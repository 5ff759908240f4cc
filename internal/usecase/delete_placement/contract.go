package delete_placement

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// Ledger журнал размещений
type Ledger interface {
	GetByID(ctx context.Context, id int64) (*domain.Placement, error)
	List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error)
	Delete(ctx context.Context, id int64) error
}

// ChildManager освобождение детей удаляемого размещения
type ChildManager interface {
	DetachFromParent(ctx context.Context, placementID int64) error
	ReleaseSeparatePlacement(ctx context.Context, childRegistrationID int64) error
}

// RoomLocker блокировка комнаты до конца транзакции
type RoomLocker interface {
	LockRoom(ctx context.Context, roomID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет результатов размещения
type MetricsRecorder interface {
	ObserveAllocation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
