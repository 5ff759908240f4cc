package list_rooms

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
)

type RoomCatalog interface {
	List(ctx context.Context, filter domain.RoomFilter, withPlacements bool) (*rooms.Catalog, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
