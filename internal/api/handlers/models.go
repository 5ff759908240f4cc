package handlers

import (
	"time"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/pkg/types"
)

// PlacementResponse размещение в ответах API
type PlacementResponse struct {
	ID                  int64   `json:"id"`
	RoomID              int64   `json:"roomId"`
	Slot                int     `json:"slot"`
	ManagerID           int64   `json:"managerId"`
	OccupantID          int64   `json:"occupantId"`
	Status              string  `json:"status"`
	DateFrom            *string `json:"dateFrom"`
	DateTo              *string `json:"dateTo"`
	Note                string  `json:"note"`
	ParentPlacementID   *int64  `json:"parentPlacementId,omitempty"`
	ChildRegistrationID *int64  `json:"childRegistrationId,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// AttachmentResponse ребенок, живущий в размещении родителя
type AttachmentResponse struct {
	ID                  int64  `json:"id"`
	PlacementID         int64  `json:"placementId"`
	ChildRegistrationID int64  `json:"childRegistrationId"`
	CreatedAt           string `json:"createdAt"`
}

// RoomResponse комната каталога
type RoomResponse struct {
	ID          int64  `json:"id"`
	Building    int    `json:"building"`
	Floor       int    `json:"floor"`
	Number      int    `json:"number"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// UserResponse жилец, менеджер или ребенок
type UserResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	SpiritualName string `json:"spiritualName"`
	DisplayName   string `json:"displayName"`
}

func FromPlacement(p *domain.Placement) PlacementResponse {
	return PlacementResponse{
		ID:                  p.ID,
		RoomID:              p.RoomID,
		Slot:                p.Slot,
		ManagerID:           p.ManagerID,
		OccupantID:          p.OccupantID,
		Status:              string(p.Status),
		DateFrom:            types.FormatDate(p.DateFrom),
		DateTo:              types.FormatDate(p.DateTo),
		Note:                p.Note,
		ParentPlacementID:   p.ParentPlacementID,
		ChildRegistrationID: p.ChildRegistrationID,
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

func FromPlacements(list []*domain.Placement) []PlacementResponse {
	out := make([]PlacementResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPlacement(p))
	}
	return out
}

func FromAttachments(list []*domain.ChildAttachment) []AttachmentResponse {
	out := make([]AttachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AttachmentResponse{
			ID:                  a.ID,
			PlacementID:         a.PlacementID,
			ChildRegistrationID: a.ChildRegistrationID,
			CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func FromRoom(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Building:    r.Building,
		Floor:       r.Floor,
		Number:      r.Number,
		Capacity:    r.Capacity,
		Description: r.Description,
	}
}

// FromUser nil -> nil
func FromUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		SpiritualName: u.SpiritualName,
		DisplayName:   u.DisplayName(),
	}
}
