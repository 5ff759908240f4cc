package get_children_placements

import (
	"errors"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/api/middleware"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/children"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgFestivalNotFound = "нет активного фестиваля"
)

type Handler struct {
	manager ChildManager
	logger  Logger
}

func NewHandler(manager ChildManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/children-placements
// Свои дети доступны пользователю, чужие - только персоналу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/children-placements - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if callerID != userID && !middleware.HasAnyRole(r.Context(), domain.StaffRoles...) {
		h.logger.Warn("GET /users/{id}/children-placements - Access denied: user_id=%d, caller_id=%d", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	roster, err := h.manager.Roster(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, children.ErrFestivalNotFound):
			handlers.RespondNotFound(w, msgFestivalNotFound)

		default:
			h.logger.Error("GET /users/{id}/children-placements - Failed to get roster: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/children-placements - Roster retrieved: user_id=%d, with_parent=%d, separate_bed=%d, unplaced=%d",
		userID, len(roster.WithParent), len(roster.SeparateBed), len(roster.Unplaced))
	handlers.RespondJSON(w, http.StatusOK, FromRoster(roster))
}
