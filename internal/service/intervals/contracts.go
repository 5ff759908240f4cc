package intervals

import (
	"context"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// PlacementRepository хранилище, выполняющее запрос пересечений
type PlacementRepository interface {
	FindOverlapping(ctx context.Context, q domain.OverlapQuery) ([]*domain.Placement, error)
}
