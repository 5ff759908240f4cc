package registration

import "errors"

var (
	// ErrChildNotFound возвращается, когда регистрация ребенка не найдена
	ErrChildNotFound = errors.New("registration.repository: child registration not found")

	ErrBuildQuery = errors.New("registration.repository: failed to build query")
	ErrExecQuery  = errors.New("registration.repository: failed to execute query")
	ErrScanRow    = errors.New("registration.repository: failed to scan row")
)
