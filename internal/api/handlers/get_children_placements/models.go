package get_children_placements

import (
	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/service/children"
)

type ChildPlacementResponse struct {
	ChildRegistrationID int64                       `json:"childRegistrationId"`
	NeedsSeparateBed    bool                        `json:"needsSeparateBed"`
	User                *handlers.UserResponse      `json:"user,omitempty"`
	Placement           *handlers.PlacementResponse `json:"placement,omitempty"`
	Room                *handlers.RoomResponse      `json:"room,omitempty"`
}

// RosterResponse HTTP response model
type RosterResponse struct {
	FestivalID  int64                    `json:"festivalId"`
	WithParent  []ChildPlacementResponse `json:"withParent"`
	SeparateBed []ChildPlacementResponse `json:"separateBed"`
	Unplaced    []ChildPlacementResponse `json:"unplaced"`
}

func FromRoster(r *children.Roster) *RosterResponse {
	return &RosterResponse{
		FestivalID:  r.FestivalID,
		WithParent:  fromEntries(r.WithParent),
		SeparateBed: fromEntries(r.SeparateBed),
		Unplaced:    fromEntries(r.Unplaced),
	}
}

func fromEntries(entries []children.RosterEntry) []ChildPlacementResponse {
	out := make([]ChildPlacementResponse, 0, len(entries))
	for _, e := range entries {
		item := ChildPlacementResponse{
			ChildRegistrationID: e.Child.ID,
			NeedsSeparateBed:    e.Child.NeedsSeparateBed,
			User:                handlers.FromUser(e.ChildUser),
		}
		if e.Placement != nil {
			p := handlers.FromPlacement(e.Placement)
			item.Placement = &p
		}
		if e.Room != nil {
			room := handlers.FromRoom(e.Room)
			item.Room = &room
		}
		out = append(out, item)
	}
	return out
}
