package update_room

import "github.com/m04kA/FestAccommodationService/internal/service/rooms"

// UpdateRoomRequest HTTP request model
type UpdateRoomRequest struct {
	Building    *int    `json:"building,omitempty"`
	Floor       *int    `json:"floor,omitempty"`
	Number      *int    `json:"number,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateRoomRequest) ToServiceRequest() rooms.RoomPatch {
	return rooms.RoomPatch{
		Building:    r.Building,
		Floor:       r.Floor,
		Number:      r.Number,
		Capacity:    r.Capacity,
		Description: r.Description,
	}
}
