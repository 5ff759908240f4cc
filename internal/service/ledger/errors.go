package ledger

import "errors"

var (
	// ErrPlacementNotFound возвращается, когда размещение не найдено
	ErrPlacementNotFound = errors.New("placement not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrOccupantNotFound возвращается, когда жилец не найден
	ErrOccupantNotFound = errors.New("occupant not found")

	// ErrInvalidSlot возвращается, когда слот вне 1..capacity
	ErrInvalidSlot = errors.New("slot is out of room capacity")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid placement status")

	// ErrInvalidInterval возвращается, когда дата выезда раньше даты заезда
	ErrInvalidInterval = errors.New("date to is before date from")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotOccupied возвращается, когда хранилище отклонило пересечение интервалов
	ErrSlotOccupied = errors.New("slot is already occupied for these dates")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ledger: internal error")
)
