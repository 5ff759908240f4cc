package get_free_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
)

const (
	msgInvalidRoomID   = "некорректный ID комнаты"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval = "нужны обе даты, dateTo не раньше dateFrom"
	msgRoomNotFound    = "комната не найдена"
)

type Handler struct {
	catalog RoomCatalog
	logger  Logger
}

func NewHandler(catalog RoomCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/free-slots
// Query params: dateFrom, dateTo (обязательны, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathID(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/free-slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	from, err := handlers.QueryDate(r, "dateFrom")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.QueryDate(r, "dateTo")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.catalog.GetFreeSlots(r.Context(), roomID, domain.NewInterval(from, to))
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/free-slots - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/free-slots - Failed to get free slots: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/free-slots - Free slots retrieved: room_id=%d, free=%d", roomID, len(result.Free))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
