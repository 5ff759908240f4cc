package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacement_Apply(t *testing.T) {
	p := &Placement{ID: 1, RoomID: 10, Slot: 1, Status: StatusBooked, Note: "old",
		DateFrom: day("2024-07-01"), DateTo: day("2024-07-10")}

	status := StatusPaid
	slot := 2
	p.Apply(PlacementPatch{Status: &status, Slot: &slot, Interval: &Interval{From: day("2024-07-02")}})

	assert.Equal(t, StatusPaid, p.Status)
	assert.Equal(t, 2, p.Slot)
	assert.Equal(t, int64(10), p.RoomID)
	assert.Equal(t, "old", p.Note)
	assert.True(t, day("2024-07-02").Equal(*p.DateFrom))
	assert.Nil(t, p.DateTo)
}

func TestPlacementPatch_IsEmpty(t *testing.T) {
	assert.True(t, PlacementPatch{}.IsEmpty())
	note := ""
	assert.False(t, PlacementPatch{Note: &note}.IsEmpty())
}

func TestOverlapQuery_Matches(t *testing.T) {
	slot := 1
	q := OverlapQuery{RoomID: 10, Slot: &slot, Interval: NewInterval(day("2024-07-05"), day("2024-07-08")), ExcludeIDs: []int64{3}}

	assert.True(t, q.Matches(&Placement{ID: 1, RoomID: 10, Slot: 1, DateFrom: day("2024-07-01"), DateTo: day("2024-07-10")}))
	assert.False(t, q.Matches(&Placement{ID: 2, RoomID: 10, Slot: 2, DateFrom: day("2024-07-01"), DateTo: day("2024-07-10")}))
	assert.False(t, q.Matches(&Placement{ID: 3, RoomID: 10, Slot: 1, DateFrom: day("2024-07-01"), DateTo: day("2024-07-10")}))
	assert.False(t, q.Matches(&Placement{ID: 4, RoomID: 11, Slot: 1, DateFrom: day("2024-07-01"), DateTo: day("2024-07-10")}))
	assert.False(t, q.Matches(&Placement{ID: 5, RoomID: 10, Slot: 1, DateFrom: day("2024-07-01")}))
}

func TestPlacementFilter_Matches(t *testing.T) {
	parent := int64(7)
	p := &Placement{ID: 1, RoomID: 10, OccupantID: 5, Status: StatusChild, ParentPlacementID: &parent,
		DateFrom: day("2024-07-01"), DateTo: day("2024-07-10")}

	child := StatusChild
	booked := StatusBooked
	occupant := int64(5)
	other := int64(8)

	tests := []struct {
		name   string
		filter PlacementFilter
		want   bool
	}{
		{name: "empty", filter: PlacementFilter{}, want: true},
		{name: "room", filter: PlacementFilter{RoomIDs: []int64{9, 10}}, want: true},
		{name: "other room", filter: PlacementFilter{RoomIDs: []int64{9}}, want: false},
		{name: "occupant and status", filter: PlacementFilter{OccupantID: &occupant, Status: &child}, want: true},
		{name: "excluded status", filter: PlacementFilter{ExcludeStatus: &child}, want: false},
		{name: "wrong status", filter: PlacementFilter{Status: &booked}, want: false},
		{name: "parent", filter: PlacementFilter{ParentPlacementID: &parent}, want: true},
		{name: "other parent", filter: PlacementFilter{ParentPlacementID: &other}, want: false},
		{name: "no child registration", filter: PlacementFilter{ChildRegistrationID: &other}, want: false},
		{name: "overlapping period", filter: PlacementFilter{DateFrom: day("2024-07-10"), DateTo: day("2024-07-20")}, want: true},
		{name: "disjoint period", filter: PlacementFilter{DateFrom: day("2024-07-11"), DateTo: day("2024-07-20")}, want: false},
		{name: "only from", filter: PlacementFilter{DateFrom: day("2024-07-05")}, want: true},
		{name: "only from after stay", filter: PlacementFilter{DateFrom: day("2024-07-11")}, want: false},
		{name: "only to", filter: PlacementFilter{DateTo: day("2024-07-01")}, want: true},
		{name: "only to before stay", filter: PlacementFilter{DateTo: day("2024-06-30")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}

func TestPlacementStatus_IsValid(t *testing.T) {
	for _, s := range []PlacementStatus{StatusBooked, StatusPaid, StatusSettled, StatusSpecial, StatusChild} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, PlacementStatus("cancelled").IsValid())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Иван Петров", (&User{ID: 1, FullName: "Иван Петров", SpiritualName: "Гопал"}).DisplayName())
	assert.Equal(t, "(Гопал)", (&User{ID: 1, SpiritualName: "Гопал"}).DisplayName())
	assert.Equal(t, "ID:3", (&User{ID: 3}).DisplayName())
}

func TestRoom_HasSlot(t *testing.T) {
	r := &Room{Capacity: 2}
	assert.False(t, r.HasSlot(0))
	assert.True(t, r.HasSlot(1))
	assert.True(t, r.HasSlot(2))
	assert.False(t, r.HasSlot(3))
}
