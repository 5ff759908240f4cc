package update_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoomData    = "нет полей для обновления или некорректное расположение"
	msgInvalidCapacity    = "некорректная вместимость комнаты"
	msgCapacityInUse      = "слоты выше новой вместимости заняты"
	msgRoomNotFound       = "комната не найдена"
	msgLocationTaken      = "комната с таким корпусом, этажом и номером уже существует"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathID(r, "roomId")
	if err != nil {
		h.logger.Warn("PUT /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Update(r.Context(), roomID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRoomData)

		case errors.Is(err, rooms.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, rooms.ErrCapacityInUse):
			h.logger.Warn("PUT /rooms/{id} - Capacity in use: room_id=%d, %v", roomID, err)
			handlers.RespondConflict(w, msgCapacityInUse)

		case errors.Is(err, rooms.ErrRoomLocationTaken):
			h.logger.Warn("PUT /rooms/{id} - Location taken: room_id=%d, %v", roomID, err)
			handlers.RespondConflict(w, msgLocationTaken)

		case errors.Is(err, rooms.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("PUT /rooms/{id} - Failed to update room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /rooms/{id} - Room updated: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromRoom(room))
}
