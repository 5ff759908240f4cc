package create_placement

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/api/middleware"
	allocatePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные размещения"
	msgInvalidSlot        = "слот вне вместимости комнаты"
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

// Handle POST /api/v1/placements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	managerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /placements - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePlacementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /placements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(managerID))
	if err != nil {
		switch {
		case errors.Is(err, allocatePlacement.ErrInvalidSlot):
			h.logger.Warn("POST /placements - Invalid slot: manager_id=%d, %v", managerID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, allocatePlacement.ErrInvalidInput):
			h.logger.Warn("POST /placements - Invalid input: manager_id=%d, %v", managerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

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
			h.logger.Error("POST /placements - Failed to create placement: manager_id=%d, error=%v", managerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /placements - Placement created: placement_id=%d, room_id=%d, slot=%d, manager_id=%d",
		result.Placement.ID, result.Placement.RoomID, result.Placement.Slot, managerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
