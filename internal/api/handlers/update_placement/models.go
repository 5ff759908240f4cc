package update_placement

import (
	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	allocatePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
	"github.com/m04kA/FestAccommodationService/pkg/types"
)

type ChildRequest struct {
	ChildRegistrationID int64 `json:"childRegistrationId"`
	WantsSeparateBed    bool  `json:"wantsSeparateBed"`
	Selected            bool  `json:"selected"`
}

// UpdatePlacementRequest HTTP request model
// Отсутствующее поле не меняется; dateFrom/dateTo: null очищает дату.
// children отсутствует - дети не трогаются, [] - все дети отвязываются
type UpdatePlacementRequest struct {
	RoomID     *int64             `json:"roomId,omitempty"`
	Slot       *int               `json:"slot,omitempty"`
	OccupantID *int64             `json:"occupantId,omitempty"`
	Status     *string            `json:"status,omitempty"`
	DateFrom   types.OptionalDate `json:"dateFrom"`
	DateTo     types.OptionalDate `json:"dateTo"`
	Note       *string            `json:"note,omitempty"`
	Children   []ChildRequest     `json:"children,omitempty"`
}

type AllocationResponse struct {
	Placement       handlers.PlacementResponse    `json:"placement"`
	ChildPlacements []handlers.PlacementResponse  `json:"childPlacements"`
	Attachments     []handlers.AttachmentResponse `json:"attachments"`
}

func (r *UpdatePlacementRequest) ToUseCaseRequest(placementID, managerID int64) *allocatePlacement.Request {
	req := &allocatePlacement.Request{
		PlacementID: &placementID,
		ManagerID:   managerID,
		RoomID:      r.RoomID,
		Slot:        r.Slot,
		OccupantID:  r.OccupantID,
		DateFrom:    r.DateFrom,
		DateTo:      r.DateTo,
		Note:        r.Note,
	}
	if r.Status != nil {
		status := domain.PlacementStatus(*r.Status)
		req.Status = &status
	}
	if r.Children != nil {
		req.Children = make([]allocatePlacement.ChildRequest, 0, len(r.Children))
		for _, c := range r.Children {
			req.Children = append(req.Children, allocatePlacement.ChildRequest{
				ChildRegistrationID: c.ChildRegistrationID,
				WantsSeparateBed:    c.WantsSeparateBed,
				Selected:            c.Selected,
			})
		}
	}
	return req
}

func FromUseCaseResponse(resp *allocatePlacement.Response) *AllocationResponse {
	return &AllocationResponse{
		Placement:       handlers.FromPlacement(resp.Placement),
		ChildPlacements: handlers.FromPlacements(resp.ChildPlacements),
		Attachments:     handlers.FromAttachments(resp.Attachments),
	}
}
