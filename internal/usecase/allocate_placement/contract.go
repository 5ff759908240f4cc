package allocate_placement

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/children"
)

// Ledger журнал размещений
type Ledger interface {
	Validate(ctx context.Context, p *domain.Placement) error
	Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error)
	Update(ctx context.Context, id int64, patch domain.PlacementPatch) (*domain.Placement, error)
	GetByID(ctx context.Context, id int64) (*domain.Placement, error)
	List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error)
}

// IntervalIndex поиск пересечений
type IntervalIndex interface {
	FindOverlapping(ctx context.Context, q domain.OverlapQuery) ([]*domain.Placement, error)
}

// ChildManager привязки и отдельные кровати детей
type ChildManager interface {
	AttachToParent(ctx context.Context, placementID, childRegistrationID int64) (*domain.ChildAttachment, error)
	DetachFromParent(ctx context.Context, placementID int64) error
	EnsureSeparatePlacement(ctx context.Context, req children.EnsureRequest) (*domain.Placement, error)
	ReleaseSeparatePlacement(ctx context.Context, childRegistrationID int64) error
}

// AttachmentRepository чтение привязок для ответа
type AttachmentRepository interface {
	ListByPlacementIDs(ctx context.Context, placementIDs []int64) ([]*domain.ChildAttachment, error)
}

// UserRepository имя родителя для заметки в размещении ребенка
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
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
