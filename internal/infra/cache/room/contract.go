package room

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// Repository хранилище комнат, поверх которого работает кэш
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
}
