package get_free_slots

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
)

type RoomCatalog interface {
	GetFreeSlots(ctx context.Context, roomID int64, iv domain.Interval) (*rooms.FreeSlots, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
