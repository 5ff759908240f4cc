package domain

// Business validation constants
const (
	MinRoomCapacity = 1
	MaxRoomCapacity = 50
	MaxNoteLength   = 1000
)

// ChildNotePrefix префикс заметки в размещении ребенка с отдельной кроватью
const ChildNotePrefix = "Ребенок родителя: "

// Роли персонала, которым доступны операции размещения
const (
	RoleAdmin                = "admin"
	RoleAccommodationManager = "accommodation_manager"
)

// StaffRoles роли, допущенные к управлению размещениями
var StaffRoles = []string{RoleAdmin, RoleAccommodationManager}

// PrimaryStatuses статусы размещений взрослых (не детей с отдельной кроватью)
var PrimaryStatuses = []PlacementStatus{
	StatusBooked,
	StatusPaid,
	StatusSettled,
	StatusSpecial,
}
