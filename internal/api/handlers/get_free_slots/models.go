package get_free_slots

import (
	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
	"github.com/m04kA/FestAccommodationService/pkg/types"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	Room     handlers.RoomResponse `json:"room"`
	DateFrom *string               `json:"dateFrom"`
	DateTo   *string               `json:"dateTo"`
	Free     []int                 `json:"free"`
	Occupied []int                 `json:"occupied"`
}

func FromServiceResponse(s *rooms.FreeSlots) *FreeSlotsResponse {
	return &FreeSlotsResponse{
		Room:     handlers.FromRoom(s.Room),
		DateFrom: types.FormatDate(s.Interval.From),
		DateTo:   types.FormatDate(s.Interval.To),
		Free:     s.Free,
		Occupied: s.Occupied,
	}
}
