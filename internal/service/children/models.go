package children

import "github.com/m04kA/FestAccommodationService/internal/domain"

// EnsureRequest параметры отдельной кровати ребенка
type EnsureRequest struct {
	ChildRegistrationID int64
	ParentPlacementID   int64
	RoomID              int64
	// ReservedSlots слоты, недоступные ребенку помимо занятых в интервале:
	// слот родителя и слоты, уже выданные братьям и сестрам в этом запросе
	ReservedSlots []int
	Interval      domain.Interval
	ManagerID     int64
	ParentName    string
}

// RosterEntry ребенок и размещение, в котором он живет
type RosterEntry struct {
	Child     *domain.ChildRegistration
	ChildUser *domain.User
	Placement *domain.Placement
	Room      *domain.Room
}

// Roster дети пользователя на активном фестивале
type Roster struct {
	FestivalID  int64
	WithParent  []RosterEntry
	SeparateBed []RosterEntry
	Unplaced    []RosterEntry
}
