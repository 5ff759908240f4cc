package rooms

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// RoomRepository каталог комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

// Ledger чтение журнала размещений
type Ledger interface {
	ListByRoomIDs(ctx context.Context, roomIDs []int64) ([]*domain.Placement, error)
}

// IntervalIndex занятость слотов
type IntervalIndex interface {
	OccupiedSlots(ctx context.Context, roomID int64, iv domain.Interval, excludeIDs ...int64) (domain.SlotSet, error)
}

// RoomLocker блокировка комнаты в транзакции
type RoomLocker interface {
	LockRoom(ctx context.Context, roomID int64) error
}

type AttachmentRepository interface {
	ListByPlacementIDs(ctx context.Context, placementIDs []int64) ([]*domain.ChildAttachment, error)
}

type RegistrationRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.ChildRegistration, error)
}

type UserRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
}

type FestivalRepository interface {
	GetActive(ctx context.Context) (*domain.Festival, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
