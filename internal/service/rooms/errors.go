package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrInvalidCapacity возвращается, когда вместимость вне допустимого диапазона
	ErrInvalidCapacity = errors.New("invalid room capacity")

	// ErrCapacityInUse возвращается, когда новая вместимость меньше занятого слота
	ErrCapacityInUse = errors.New("room capacity is below an occupied slot")

	// ErrRoomLocationTaken возвращается, когда корпус, этаж и номер заняты другой комнатой
	ErrRoomLocationTaken = errors.New("room with this building, floor and number already exists")

	// ErrRoomInUse возвращается при удалении комнаты с размещениями
	ErrRoomInUse = errors.New("room has placements")

	// ErrInvalidInterval возвращается, когда период не задан полностью или перепутан
	ErrInvalidInterval = errors.New("both dates are required and date to must not be before date from")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rooms: internal error")
)
