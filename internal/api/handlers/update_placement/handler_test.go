package update_placement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/api/middleware"
	"github.com/m04kA/FestAccommodationService/internal/domain"
	allocatePlacement "github.com/m04kA/FestAccommodationService/internal/usecase/allocate_placement"
	"github.com/m04kA/FestAccommodationService/pkg/logger"
)

type fakeUseCase struct {
	got  *allocatePlacement.Request
	resp *allocatePlacement.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *allocatePlacement.Request) (*allocatePlacement.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(placementID, body string, userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/placements/"+placementID, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"placementId": placementID})
	if userID > 0 {
		r = r.WithContext(middleware.WithUser(r.Context(), userID, domain.RoleAccommodationManager))
	}
	return r
}

func okUseCase() *fakeUseCase {
	return &fakeUseCase{resp: &allocatePlacement.Response{
		Placement: &domain.Placement{ID: 10, RoomID: 5, Slot: 1, Status: domain.StatusPaid},
	}}
}

func TestHandle_Updated(t *testing.T) {
	uc := okUseCase()
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("10", `{"status":"paid","dateTo":"2024-07-12"}`, 42))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	require.NotNil(t, uc.got.PlacementID)
	assert.Equal(t, int64(10), *uc.got.PlacementID)
	assert.True(t, uc.got.IsEdit())
	assert.Equal(t, int64(42), uc.got.ManagerID)
	require.NotNil(t, uc.got.Status)
	assert.Equal(t, domain.StatusPaid, *uc.got.Status)
	assert.Nil(t, uc.got.RoomID)
	assert.Nil(t, uc.got.Slot)
	assert.True(t, uc.got.DateTo.Set)
	assert.Equal(t, "2024-07-12", uc.got.DateTo.Value.Format("2006-01-02"))

	var resp AllocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.Placement.ID)
	assert.Equal(t, "paid", resp.Placement.Status)
}

func TestHandle_DatePresence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue bool
	}{
		{name: "absent keeps stored date", body: `{"note":"x"}`, wantSet: false, wantValue: false},
		{name: "null clears date", body: `{"dateFrom":null}`, wantSet: true, wantValue: false},
		{name: "value sets date", body: `{"dateFrom":"2024-07-02"}`, wantSet: true, wantValue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := okUseCase()
			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, newRequest("10", tt.body, 42))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantSet, uc.got.DateFrom.Set)
			assert.Equal(t, tt.wantValue, uc.got.DateFrom.Value != nil)
			assert.False(t, uc.got.DateTo.Set)
		})
	}
}

func TestHandle_ChildrenPresence(t *testing.T) {
	t.Run("absent leaves children", func(t *testing.T) {
		uc := okUseCase()
		w := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(w, newRequest("10", `{"slot":2}`, 42))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, uc.got.Children)
	})

	t.Run("empty list detaches all", func(t *testing.T) {
		uc := okUseCase()
		w := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(w, newRequest("10", `{"children":[]}`, 42))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, uc.got.Children)
		assert.Empty(t, uc.got.Children)
	})

	t.Run("list is passed through", func(t *testing.T) {
		uc := okUseCase()
		body := `{"children":[{"childRegistrationId":3,"wantsSeparateBed":false,"selected":true}]}`
		w := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(w, newRequest("10", body, 42))

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, uc.got.Children, 1)
		assert.Equal(t, int64(3), uc.got.Children[0].ChildRegistrationID)
		assert.False(t, uc.got.Children[0].WantsSeparateBed)
	})
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: a child placement keeps its status", allocatePlacement.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "invalid slot", err: allocatePlacement.ErrInvalidSlot, wantStatus: http.StatusBadRequest},
		{name: "placement not found", err: allocatePlacement.ErrPlacementNotFound, wantStatus: http.StatusNotFound},
		{name: "room not found", err: allocatePlacement.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "occupant not found", err: allocatePlacement.ErrOccupantNotFound, wantStatus: http.StatusNotFound},
		{name: "child not found", err: allocatePlacement.ErrChildNotFound, wantStatus: http.StatusNotFound},
		{name: "slot occupied", err: allocatePlacement.ErrSlotOccupied, wantStatus: http.StatusConflict},
		{name: "no free slot", err: allocatePlacement.ErrNoFreeSlot, wantStatus: http.StatusConflict},
		{name: "internal", err: allocatePlacement.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()).Handle(w, newRequest("10", `{"slot":2}`, 42))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name        string
		placementID string
		body        string
	}{
		{name: "bad id", placementID: "abc", body: `{"slot":2}`},
		{name: "zero id", placementID: "0", body: `{"slot":2}`},
		{name: "broken json", placementID: "10", body: `{`},
		{name: "unknown field", placementID: "10", body: `{"bed":2}`},
		{name: "bad date", placementID: "10", body: `{"dateTo":"12.07.2024"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, newRequest(tt.placementID, tt.body, 42))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	uc := &fakeUseCase{}
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, newRequest("10", `{"slot":2}`, 0))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, uc.got)
}
