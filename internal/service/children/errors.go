package children

import "errors"

var (
	// ErrChildNotFound возвращается, когда регистрация ребенка не найдена
	ErrChildNotFound = errors.New("child registration not found")

	// ErrPlacementNotFound возвращается, когда размещение родителя не найдено
	ErrPlacementNotFound = errors.New("parent placement not found")

	// ErrInvalidParent возвращается при попытке привязать ребенка к размещению другого ребенка
	ErrInvalidParent = errors.New("children can be attached only to a primary placement")

	// ErrRoomNotFound возвращается, когда комната родителя не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrNoFreeSlot возвращается, когда в комнате нет свободного слота для ребенка
	ErrNoFreeSlot = errors.New("no free slot in the room for the child")

	// ErrFestivalNotFound возвращается, когда нет активного фестиваля
	ErrFestivalNotFound = errors.New("active festival not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("children: internal error")
)
