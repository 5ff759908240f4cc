package list_placements

import (
	"fmt"
	"net/http"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
	"github.com/m04kA/FestAccommodationService/internal/domain"
)

// ToFilter собирает фильтр из query параметров userId, roomId, status, dateFrom, dateTo
func ToFilter(r *http.Request) (domain.PlacementFilter, error) {
	var filter domain.PlacementFilter

	userID, err := handlers.QueryInt64(r, "userId")
	if err != nil {
		return filter, err
	}
	filter.OccupantID = userID

	roomID, err := handlers.QueryInt64(r, "roomId")
	if err != nil {
		return filter, err
	}
	if roomID != nil {
		filter.RoomIDs = []int64{*roomID}
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.PlacementStatus(raw)
		if !status.IsValid() {
			return filter, fmt.Errorf("invalid status %q", raw)
		}
		filter.Status = &status
	}

	if filter.DateFrom, err = handlers.QueryDate(r, "dateFrom"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = handlers.QueryDate(r, "dateTo"); err != nil {
		return filter, err
	}

	return filter, nil
}
