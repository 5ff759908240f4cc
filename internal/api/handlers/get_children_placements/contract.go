package get_children_placements

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/service/children"
)

type ChildManager interface {
	Roster(ctx context.Context, userID int64) (*children.Roster, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
