package list_rooms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
	"github.com/m04kA/FestAccommodationService/pkg/logger"
)

type fakeCatalog struct {
	catalog        *rooms.Catalog
	err            error
	called         bool
	filter         domain.RoomFilter
	withPlacements bool
}

func (f *fakeCatalog) List(_ context.Context, filter domain.RoomFilter, withPlacements bool) (*rooms.Catalog, error) {
	f.called = true
	f.filter = filter
	f.withPlacements = withPlacements
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

func sampleCatalog() *rooms.Catalog {
	return &rooms.Catalog{
		Festival: &domain.Festival{ID: 3, AvailableBuildings: []int{1, 2}},
		Rooms: []rooms.RoomView{{
			Room: &domain.Room{ID: 5, Building: 1, Floor: 2, Number: 201, Capacity: 3},
			Placements: []rooms.PlacementView{{
				Placement: &domain.Placement{ID: 10, RoomID: 5, Slot: 1, OccupantID: 7, ManagerID: 1, Status: domain.StatusBooked},
				Occupant:  &domain.User{ID: 7, FullName: "Мария Иванова"},
				Manager:   &domain.User{ID: 1, FullName: "Менеджер"},
				Children: []rooms.ChildView{{
					Registration: &domain.ChildRegistration{ID: 4, ChildUserID: 8},
					User:         &domain.User{ID: 8, FullName: "Петя"},
				}},
			}},
		}},
	}
}

func doGet(h *Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms"+query, nil))
	return w
}

func TestHandle_Filters(t *testing.T) {
	catalog := &fakeCatalog{catalog: sampleCatalog()}
	h := NewHandler(catalog, logger.NewNop())

	w := doGet(h, "?building=1&floor=2&number=201&withPlacements=true")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, catalog.filter.Building)
	require.NotNil(t, catalog.filter.Floor)
	require.NotNil(t, catalog.filter.Number)
	assert.Equal(t, 1, *catalog.filter.Building)
	assert.Equal(t, 2, *catalog.filter.Floor)
	assert.Equal(t, 201, *catalog.filter.Number)
	assert.True(t, catalog.withPlacements)

	var resp ListRoomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Festival)
	assert.Equal(t, []int{1, 2}, resp.Festival.AvailableBuildings)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, int64(5), resp.Rooms[0].ID)
	require.Len(t, resp.Rooms[0].Placements, 1)

	p := resp.Rooms[0].Placements[0]
	assert.Equal(t, int64(10), p.ID)
	require.NotNil(t, p.Occupant)
	assert.Equal(t, "Мария Иванова", p.Occupant.FullName)
	require.Len(t, p.Children, 1)
	assert.Equal(t, int64(4), p.Children[0].ChildRegistrationID)
}

func TestHandle_NoFilters(t *testing.T) {
	catalog := &fakeCatalog{catalog: sampleCatalog()}
	h := NewHandler(catalog, logger.NewNop())

	w := doGet(h, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, catalog.filter.Building)
	assert.Nil(t, catalog.filter.Floor)
	assert.Nil(t, catalog.filter.Number)
	assert.False(t, catalog.withPlacements)

	var resp ListRoomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rooms, 1)
	assert.Nil(t, resp.Rooms[0].Placements, "placements are omitted without withPlacements")
}

func TestHandle_InvalidParams(t *testing.T) {
	for _, query := range []string{"?building=a", "?floor=1.5", "?number=x", "?withPlacements=maybe"} {
		catalog := &fakeCatalog{catalog: sampleCatalog()}
		w := doGet(NewHandler(catalog, logger.NewNop()), query)

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.False(t, catalog.called, query)
	}
}

func TestHandle_InternalError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("rooms: internal error")}
	w := doGet(NewHandler(catalog, logger.NewNop()), "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
