package delete_placement

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_placement: invalid input data")

	// ErrPlacementNotFound возвращается, когда размещение не найдено
	ErrPlacementNotFound = errors.New("delete_placement: placement not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("delete_placement: internal error")
)
