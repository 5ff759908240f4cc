package delete_placement

import (
	"context"

	deletePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/delete_placement"
)

type DeletePlacementUseCase interface {
	Execute(ctx context.Context, req *deletePlacement.Request) (*deletePlacement.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
