package update_placement

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/api/middleware"
	allocatePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
)

const (
	msgInvalidPlacementID = "некорректный ID размещения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные размещения"
	msgInvalidSlot        = "слот вне вместимости комнаты"
	msgPlacementNotFound  = "размещение не найдено"
	msgRoomNotFound       = "комната не найдена"
	msgOccupantNotFound   = "жилец не найден"
	msgChildNotFound      = "регистрация ребенка не найдена"
	msgSlotOccupied       = "слот уже занят на эти даты"
	msgNoFreeSlot         = "в комнате нет свободного слота для ребенка"
)

type Handler struct {
	useCase AllocatePlacementUseCase
	logger  Logger
}

func NewHandler(useCase AllocatePlacementUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/placements/{placementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	placementID, err := handlers.PathID(r, "placementId")
	if err != nil {
		h.logger.Warn("PUT /placements/{id} - Invalid placement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlacementID)
		return
	}

	managerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /placements/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePlacementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /placements/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(placementID, managerID))
	if err != nil {
		switch {
		case errors.Is(err, allocatePlacement.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, allocatePlacement.ErrInvalidInput):
			h.logger.Warn("PUT /placements/{id} - Invalid input: placement_id=%d, %v", placementID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, allocatePlacement.ErrPlacementNotFound):
			handlers.RespondNotFound(w, msgPlacementNotFound)

		case errors.Is(err, allocatePlacement.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, allocatePlacement.ErrOccupantNotFound):
			handlers.RespondNotFound(w, msgOccupantNotFound)

		case errors.Is(err, allocatePlacement.ErrChildNotFound):
			handlers.RespondNotFound(w, msgChildNotFound)

		case errors.Is(err, allocatePlacement.ErrSlotOccupied):
			handlers.RespondConflict(w, msgSlotOccupied)

		case errors.Is(err, allocatePlacement.ErrNoFreeSlot):
			handlers.RespondConflict(w, msgNoFreeSlot)

		default:
			h.logger.Error("PUT /placements/{id} - Failed to update placement: placement_id=%d, error=%v", placementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /placements/{id} - Placement updated: placement_id=%d, manager_id=%d", placementID, managerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
