package children

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// Ledger журнал размещений (ledger.Service)
type Ledger interface {
	Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error)
	Update(ctx context.Context, id int64, patch domain.PlacementPatch) (*domain.Placement, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Placement, error)
	List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error)
}

// IntervalIndex занятость слотов (intervals.Index)
type IntervalIndex interface {
	OccupiedSlots(ctx context.Context, roomID int64, iv domain.Interval, excludeIDs ...int64) (domain.SlotSet, error)
}

// AttachmentRepository связи ребенка с размещением родителя
type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.ChildAttachment) (*domain.ChildAttachment, error)
	ListByPlacementIDs(ctx context.Context, placementIDs []int64) ([]*domain.ChildAttachment, error)
	ListByChildRegistrationIDs(ctx context.Context, childIDs []int64) ([]*domain.ChildAttachment, error)
	DeleteByPlacement(ctx context.Context, placementID int64) (int64, error)
	DeleteByChild(ctx context.Context, childRegistrationID int64) (int64, error)
}

// RegistrationRepository дети из регистраций
type RegistrationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ChildRegistration, error)
	ListByParentUser(ctx context.Context, userID, festivalID int64) ([]*domain.ChildRegistration, error)
	SetNeedsSeparateBed(ctx context.Context, id int64, value bool) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type UserRepository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
}

type FestivalRepository interface {
	GetActive(ctx context.Context) (*domain.Festival, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
