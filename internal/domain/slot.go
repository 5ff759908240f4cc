package domain

import "sort"

// SlotSet set of occupied slot numbers
type SlotSet map[int]struct{}

// NewSlotSet builds a set from slot numbers
func NewSlotSet(slots ...int) SlotSet {
	set := make(SlotSet, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

// Add marks slots as occupied
func (s SlotSet) Add(slots ...int) {
	for _, slot := range slots {
		s[slot] = struct{}{}
	}
}

// Has returns true if the slot is occupied
func (s SlotSet) Has(slot int) bool {
	_, ok := s[slot]
	return ok
}

// Sorted returns slot numbers in ascending order
func (s SlotSet) Sorted() []int {
	slots := make([]int, 0, len(s))
	for slot := range s {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}

// NextFreeSlot returns the lowest slot in 1..capacity that is not occupied.
// ok is false when every slot is taken or capacity <= 0.
func NextFreeSlot(capacity int, occupied SlotSet) (slot int, ok bool) {
	for i := 1; i <= capacity; i++ {
		if !occupied.Has(i) {
			return i, true
		}
	}
	return 0, false
}

// FreeSlots returns all free slots in ascending order
func FreeSlots(capacity int, occupied SlotSet) []int {
	if capacity <= 0 {
		return []int{}
	}
	free := make([]int, 0, capacity)
	for i := 1; i <= capacity; i++ {
		if !occupied.Has(i) {
			free = append(free, i)
		}
	}
	return free
}
