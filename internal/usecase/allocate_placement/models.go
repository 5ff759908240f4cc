package allocate_placement

import (
	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/types"
)

// ChildRequest выбор по ребенку из регистрации
type ChildRequest struct {
	ChildRegistrationID int64
	WantsSeparateBed    bool
	Selected            bool
}

// Request создание (PlacementID == nil) или редактирование размещения
// При редактировании отсутствующее поле сохраняет прежнее значение, null в дате ее очищает.
// Children == nil - дети не трогаются
type Request struct {
	PlacementID *int64
	ManagerID   int64

	RoomID     *int64
	Slot       *int
	OccupantID *int64
	Status     *domain.PlacementStatus
	DateFrom   types.OptionalDate
	DateTo     types.OptionalDate
	Note       *string

	Children []ChildRequest
}

// IsEdit true для редактирования
func (r *Request) IsEdit() bool {
	return r.PlacementID != nil
}

// Response основное размещение, отдельные кровати детей и привязанные дети
type Response struct {
	Placement       *domain.Placement
	ChildPlacements []*domain.Placement
	Attachments     []*domain.ChildAttachment
}
