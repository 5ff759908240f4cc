package get_free_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
	"github.com/m04kA/FestAccommodationService/pkg/logger"
)

type fakeCatalog struct {
	err error
	got domain.Interval
}

func (f *fakeCatalog) GetFreeSlots(_ context.Context, roomID int64, iv domain.Interval) (*rooms.FreeSlots, error) {
	f.got = iv
	if f.err != nil {
		return nil, f.err
	}
	return &rooms.FreeSlots{
		Room:     &domain.Room{ID: roomID, Capacity: 4},
		Interval: iv,
		Free:     []int{2, 4},
		Occupied: []int{1, 3},
	}, nil
}

func doGet(h *Handler, roomID, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+roomID+"/free-slots"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"roomId": roomID})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_FreeSlots(t *testing.T) {
	catalog := &fakeCatalog{}
	h := NewHandler(catalog, logger.NewNop())

	w := doGet(h, "9", "?dateFrom=2025-07-01&dateTo=2025-07-10")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, catalog.got.From)
	require.NotNil(t, catalog.got.To)

	var body FreeSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(9), body.Room.ID)
	assert.Equal(t, []int{2, 4}, body.Free)
	assert.Equal(t, []int{1, 3}, body.Occupied)
	require.NotNil(t, body.DateFrom)
	assert.Equal(t, "2025-07-01", *body.DateFrom)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		roomID     string
		query      string
		err        error
		wantStatus int
	}{
		{name: "bad room id", roomID: "x", query: "?dateFrom=2025-07-01&dateTo=2025-07-10", wantStatus: http.StatusBadRequest},
		{name: "bad date", roomID: "9", query: "?dateFrom=01.07.2025&dateTo=2025-07-10", wantStatus: http.StatusBadRequest},
		{name: "missing date", roomID: "9", query: "?dateFrom=2025-07-01", err: rooms.ErrInvalidInterval, wantStatus: http.StatusBadRequest},
		{name: "not found", roomID: "9", query: "?dateFrom=2025-07-01&dateTo=2025-07-10", err: rooms.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", roomID: "9", query: "?dateFrom=2025-07-01&dateTo=2025-07-10", err: rooms.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(NewHandler(&fakeCatalog{err: tt.err}, logger.NewNop()), tt.roomID, tt.query)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
