package list_placements

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/service/ledger"
)

const (
	msgInvalidParams   = "некорректные параметры запроса"
	msgInvalidInterval = "дата окончания раньше даты начала"
)

type Handler struct {
	ledger PlacementLedger
	logger Logger
}

func NewHandler(ledger PlacementLedger, logger Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// Handle GET /api/v1/placements
// Query params: userId, roomId, status, dateFrom, dateTo (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := ToFilter(r)
	if err != nil {
		h.logger.Warn("GET /placements - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	placements, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /placements - Failed to list placements: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /placements - Placements retrieved: count=%d", len(placements))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromPlacements(placements))
}
