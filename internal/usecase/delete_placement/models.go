package delete_placement

// Request запрос на удаление размещения
type Request struct {
	PlacementID int64
}

// Response что было удалено вместе с размещением
type Response struct {
	PlacementID int64
	RoomID      int64
	// ReleasedChildren регистрации детей, чьи отдельные кровати освобождены
	ReleasedChildren []int64
	// ChildRegistrationID заполнен, если удалялось детское размещение
	ChildRegistrationID *int64
}
