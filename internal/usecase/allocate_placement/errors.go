package allocate_placement

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("allocate_placement: invalid input data")

	// ErrInvalidSlot возвращается, когда слот вне 1..capacity
	ErrInvalidSlot = errors.New("allocate_placement: slot is out of room capacity")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("allocate_placement: room not found")

	// ErrOccupantNotFound возвращается, когда жилец не найден
	ErrOccupantNotFound = errors.New("allocate_placement: occupant not found")

	// ErrPlacementNotFound возвращается, когда редактируемое размещение не найдено
	ErrPlacementNotFound = errors.New("allocate_placement: placement not found")

	// ErrChildNotFound возвращается, когда регистрация ребенка не найдена
	ErrChildNotFound = errors.New("allocate_placement: child registration not found")

	// ErrSlotOccupied возвращается, когда слот занят на пересекающиеся даты
	ErrSlotOccupied = errors.New("allocate_placement: slot is already occupied for these dates")

	// ErrNoFreeSlot возвращается, когда в комнате не хватило слотов для детей
	ErrNoFreeSlot = errors.New("allocate_placement: no free slot in the room for a child")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("allocate_placement: internal error")
)
