package domain

// Room represents a lodging room. Capacity is the number of bed slots (1..Capacity).
type Room struct {
	ID          int64
	Building    int
	Floor       int
	Number      int
	Capacity    int
	Description string
}

// HasSlot returns true if slot is within 1..Capacity
func (r *Room) HasSlot(slot int) bool {
	return slot >= 1 && slot <= r.Capacity
}

// RoomFilter фильтр каталога комнат
type RoomFilter struct {
	Building  *int
	Floor     *int
	Number    *int
	Buildings []int // ограничение корпусами активного фестиваля (пусто - без ограничения)
}
