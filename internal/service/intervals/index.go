package intervals

import (
	"context"
	"fmt"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// Index поиск пересекающихся размещений
// Все проверки занятости идут через него, условие пересечения одно на весь сервис
type Index struct {
	repo PlacementRepository
}

func NewIndex(repo PlacementRepository) *Index {
	return &Index{repo: repo}
}

// FindOverlapping размещения комнаты (или слота), пересекающиеся с интервалом
// Интервал без одной из границ ни с чем не пересекается
func (i *Index) FindOverlapping(ctx context.Context, q domain.OverlapQuery) ([]*domain.Placement, error) {
	if !q.Interval.IsBounded() {
		return []*domain.Placement{}, nil
	}

	placements, err := i.repo.FindOverlapping(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - room_id=%d: %w", ErrInternal, q.RoomID, err)
	}

	return placements, nil
}

// OccupiedSlots слоты комнаты, занятые в интервале
func (i *Index) OccupiedSlots(ctx context.Context, roomID int64, iv domain.Interval, excludeIDs ...int64) (domain.SlotSet, error) {
	placements, err := i.FindOverlapping(ctx, domain.OverlapQuery{
		RoomID:     roomID,
		Interval:   iv,
		ExcludeIDs: excludeIDs,
	})
	if err != nil {
		return nil, err
	}

	occupied := domain.NewSlotSet()
	for _, p := range placements {
		occupied.Add(p.Slot)
	}

	return occupied, nil
}
