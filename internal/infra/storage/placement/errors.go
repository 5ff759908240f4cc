package placement

import "errors"

var (
	// ErrPlacementNotFound возвращается, когда размещение не найдено
	ErrPlacementNotFound = errors.New("placement.repository: placement not found")

	// ErrSlotConflict возвращается при нарушении ограничения на пересечение интервалов в слоте
	ErrSlotConflict = errors.New("placement.repository: slot already occupied for these dates")

	// ErrNotInTransaction возвращается, когда блокировка запрошена вне транзакции
	ErrNotInTransaction = errors.New("placement.repository: operation requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("placement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("placement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("placement.repository: failed to scan row")
)
