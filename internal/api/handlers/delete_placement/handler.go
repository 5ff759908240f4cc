package delete_placement

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	deletePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/delete_placement"
)

const (
	msgInvalidPlacementID = "некорректный ID размещения"
	msgPlacementNotFound  = "размещение не найдено"
)

type Handler struct {
	useCase DeletePlacementUseCase
	logger  Logger
}

func NewHandler(useCase DeletePlacementUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/placements/{placementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	placementID, err := handlers.PathID(r, "placementId")
	if err != nil {
		h.logger.Warn("DELETE /placements/{id} - Invalid placement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlacementID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &deletePlacement.Request{PlacementID: placementID})
	if err != nil {
		switch {
		case errors.Is(err, deletePlacement.ErrPlacementNotFound):
			h.logger.Warn("DELETE /placements/{id} - Placement not found: placement_id=%d", placementID)
			handlers.RespondNotFound(w, msgPlacementNotFound)

		case errors.Is(err, deletePlacement.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPlacementID)

		default:
			h.logger.Error("DELETE /placements/{id} - Failed to delete placement: placement_id=%d, error=%v", placementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /placements/{id} - Placement deleted: placement_id=%d, released_children=%d",
		placementID, len(result.ReleasedChildren))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
