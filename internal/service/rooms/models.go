package rooms

import "github.com/m04kA/FestAccommodationService/internal/domain"

// RoomPatch изменяемые поля комнаты, nil - без изменений
type RoomPatch struct {
	Building    *int
	Floor       *int
	Number      *int
	Capacity    *int
	Description *string
}

func (p RoomPatch) IsEmpty() bool {
	return p.Building == nil && p.Floor == nil && p.Number == nil && p.Capacity == nil && p.Description == nil
}

// ChildView ребенок, живущий с родителем
type ChildView struct {
	Registration *domain.ChildRegistration
	User         *domain.User
}

// PlacementView размещение с жильцом, менеджером и привязанными детьми
type PlacementView struct {
	Placement *domain.Placement
	Occupant  *domain.User
	Manager   *domain.User
	Children  []ChildView
}

// RoomView комната каталога
type RoomView struct {
	Room       *domain.Room
	Placements []PlacementView
}

// Catalog результат листинга
type Catalog struct {
	Festival *domain.Festival
	Rooms    []RoomView
}

// FreeSlots свободные и занятые слоты комнаты за период
type FreeSlots struct {
	Room     *domain.Room
	Interval domain.Interval
	Free     []int
	Occupied []int
}
