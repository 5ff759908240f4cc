package update_placement

import (
	"context"

	allocatePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
)

type AllocatePlacementUseCase interface {
	Execute(ctx context.Context, req *allocatePlacement.Request) (*allocatePlacement.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
