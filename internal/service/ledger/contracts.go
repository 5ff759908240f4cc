package ledger

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// PlacementRepository интерфейс репозитория размещений
type PlacementRepository interface {
	Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error)
	GetByID(ctx context.Context, id int64) (*domain.Placement, error)
	Update(ctx context.Context, p *domain.Placement) (*domain.Placement, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error)
}

// RoomRepository интерфейс каталога комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// UserRepository интерфейс справочника пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
