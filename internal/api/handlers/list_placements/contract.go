package list_placements

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

type PlacementLedger interface {
	List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
