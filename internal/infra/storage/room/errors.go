package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrRoomInUse возвращается при удалении комнаты, на которую ссылаются размещения
	ErrRoomInUse = errors.New("room.repository: room has placements")

	// ErrRoomExists возвращается, когда корпус, этаж и номер уже заняты другой комнатой
	ErrRoomExists = errors.New("room.repository: room with this building, floor and number already exists")

	ErrBuildQuery = errors.New("room.repository: failed to build query")
	ErrExecQuery  = errors.New("room.repository: failed to execute query")
	ErrScanRow    = errors.New("room.repository: failed to scan row")
)
