package delete_placement

import deletePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/delete_placement"

// DeletePlacementResponse HTTP response model
type DeletePlacementResponse struct {
	PlacementID      int64   `json:"placementId"`
	RoomID           int64   `json:"roomId"`
	ReleasedChildren []int64 `json:"releasedChildren"`
}

func FromUseCaseResponse(resp *deletePlacement.Response) *DeletePlacementResponse {
	return &DeletePlacementResponse{
		PlacementID:      resp.PlacementID,
		RoomID:           resp.RoomID,
		ReleasedChildren: resp.ReleasedChildren,
	}
}
