package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFreeSlot(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		occupied SlotSet
		wantSlot int
		wantOK   bool
	}{
		{name: "gap in the middle", capacity: 3, occupied: NewSlotSet(1, 3), wantSlot: 2, wantOK: true},
		{name: "all occupied", capacity: 2, occupied: NewSlotSet(1, 2), wantOK: false},
		{name: "empty room", capacity: 4, occupied: NewSlotSet(), wantSlot: 1, wantOK: true},
		{name: "nil set", capacity: 1, occupied: nil, wantSlot: 1, wantOK: true},
		{name: "slots outside capacity ignored", capacity: 2, occupied: NewSlotSet(1, 7), wantSlot: 2, wantOK: true},
		{name: "zero capacity", capacity: 0, occupied: NewSlotSet(), wantOK: false},
		{name: "negative capacity", capacity: -1, occupied: NewSlotSet(), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := NextFreeSlot(tt.capacity, tt.occupied)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantSlot, slot)
			}
		})
	}
}

func TestFreeSlots(t *testing.T) {
	assert.Equal(t, []int{2, 4}, FreeSlots(4, NewSlotSet(1, 3)))
	assert.Empty(t, FreeSlots(2, NewSlotSet(1, 2)))
	assert.Empty(t, FreeSlots(-3, nil))
}

func TestSlotSet_Sorted(t *testing.T) {
	set := NewSlotSet(3, 1)
	set.Add(2, 3)
	assert.Equal(t, []int{1, 2, 3}, set.Sorted())
}
