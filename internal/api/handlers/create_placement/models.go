package create_placement

import (
	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	allocatePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
	"github.com/m04kA/FestAccommodationService/pkg/types"
)

// ChildRequest выбор по ребенку
type ChildRequest struct {
	ChildRegistrationID int64 `json:"childRegistrationId"`
	WantsSeparateBed    bool  `json:"wantsSeparateBed"`
	Selected            bool  `json:"selected"`
}

// CreatePlacementRequest HTTP request model
type CreatePlacementRequest struct {
	RoomID     *int64             `json:"roomId"`
	Slot       *int               `json:"slot"`
	OccupantID *int64             `json:"occupantId"`
	Status     *string            `json:"status,omitempty"`
	DateFrom   types.OptionalDate `json:"dateFrom"`
	DateTo     types.OptionalDate `json:"dateTo"`
	Note       *string            `json:"note,omitempty"`
	Children   []ChildRequest     `json:"children,omitempty"`
}

// AllocationResponse HTTP response model
type AllocationResponse struct {
	Placement       handlers.PlacementResponse    `json:"placement"`
	ChildPlacements []handlers.PlacementResponse  `json:"childPlacements"`
	Attachments     []handlers.AttachmentResponse `json:"attachments"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePlacementRequest) ToUseCaseRequest(managerID int64) *allocatePlacement.Request {
	req := &allocatePlacement.Request{
		ManagerID:  managerID,
		RoomID:     r.RoomID,
		Slot:       r.Slot,
		OccupantID: r.OccupantID,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
		Note:       r.Note,
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *allocatePlacement.Response) *AllocationResponse {
	return &AllocationResponse{
		Placement:       handlers.FromPlacement(resp.Placement),
		ChildPlacements: handlers.FromPlacements(resp.ChildPlacements),
		Attachments:     handlers.FromAttachments(resp.Attachments),
	}
}
