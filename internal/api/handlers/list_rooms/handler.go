package list_rooms

import (
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/rooms
// Query params: building, floor, number, withPlacements (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := toFilter(r)
	if err != nil {
		h.logger.Warn("GET /rooms - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	withPlacements, err := handlers.QueryBool(r, "withPlacements")
	if err != nil {
		h.logger.Warn("GET /rooms - Invalid withPlacements: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	catalog, err := h.catalog.List(r.Context(), filter, withPlacements)
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved: count=%d, with_placements=%t", len(catalog.Rooms), withPlacements)
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(catalog, withPlacements))
}
