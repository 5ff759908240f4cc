package list_rooms

import (
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
	"github.com/m04kA/FestAccommodationService/pkg/types"
)

type ChildResponse struct {
	ChildRegistrationID int64                  `json:"childRegistrationId"`
	NeedsSeparateBed    bool                   `json:"needsSeparateBed"`
	User                *handlers.UserResponse `json:"user,omitempty"`
}

type PlacementResponse struct {
	handlers.PlacementResponse
	Occupant *handlers.UserResponse `json:"occupant,omitempty"`
	Manager  *handlers.UserResponse `json:"manager,omitempty"`
	Children []ChildResponse        `json:"children"`
}

type RoomResponse struct {
	handlers.RoomResponse
	Placements []PlacementResponse `json:"placements,omitempty"`
}

type FestivalResponse struct {
	ID                 int64   `json:"id"`
	StartDate          *string `json:"startDate"`
	EndDate            *string `json:"endDate"`
	AvailableBuildings []int   `json:"availableBuildings"`
}

// ListRoomsResponse HTTP response model
type ListRoomsResponse struct {
	Festival *FestivalResponse `json:"festival"`
	Rooms    []RoomResponse    `json:"rooms"`
}

func FromCatalog(c *rooms.Catalog, withPlacements bool) *ListRoomsResponse {
	resp := &ListRoomsResponse{Rooms: make([]RoomResponse, 0, len(c.Rooms))}

	if c.Festival != nil {
		resp.Festival = &FestivalResponse{
			ID:                 c.Festival.ID,
			StartDate:          types.FormatDate(c.Festival.StartDate),
			EndDate:            types.FormatDate(c.Festival.EndDate),
			AvailableBuildings: c.Festival.AvailableBuildings,
		}
	}

	for _, rv := range c.Rooms {
		room := RoomResponse{RoomResponse: handlers.FromRoom(rv.Room)}
		if withPlacements {
			room.Placements = make([]PlacementResponse, 0, len(rv.Placements))
			for _, pv := range rv.Placements {
				room.Placements = append(room.Placements, fromPlacementView(pv))
			}
		}
		resp.Rooms = append(resp.Rooms, room)
	}

	return resp
}

func fromPlacementView(pv rooms.PlacementView) PlacementResponse {
	out := PlacementResponse{
		PlacementResponse: handlers.FromPlacement(pv.Placement),
		Occupant:          handlers.FromUser(pv.Occupant),
		Manager:           handlers.FromUser(pv.Manager),
		Children:          make([]ChildResponse, 0, len(pv.Children)),
	}
	for _, c := range pv.Children {
		out.Children = append(out.Children, ChildResponse{
			ChildRegistrationID: c.Registration.ID,
			NeedsSeparateBed:    c.Registration.NeedsSeparateBed,
			User:                handlers.FromUser(c.User),
		})
	}
	return out
}

func toFilter(r *http.Request) (domain.RoomFilter, error) {
	var filter domain.RoomFilter
	var err error

	if filter.Building, err = handlers.QueryInt(r, "building"); err != nil {
		return filter, err
	}
	if filter.Floor, err = handlers.QueryInt(r, "floor"); err != nil {
		return filter, err
	}
	if filter.Number, err = handlers.QueryInt(r, "number"); err != nil {
		return filter, err
	}
	return filter, nil
}
