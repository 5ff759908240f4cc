package attachment

import "errors"

var (
	// ErrAlreadyAttached возвращается, если ребенок уже привязан к этому размещению
	ErrAlreadyAttached = errors.New("attachment.repository: child already attached to placement")

	ErrBuildQuery = errors.New("attachment.repository: failed to build query")
	ErrExecQuery  = errors.New("attachment.repository: failed to execute query")
	ErrScanRow    = errors.New("attachment.repository: failed to scan row")
)
