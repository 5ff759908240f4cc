package festival

import "errors"

var (
	// ErrFestivalNotFound возвращается, когда нет активного фестиваля
	ErrFestivalNotFound = errors.New("festival.repository: active festival not found")

	ErrBuildQuery = errors.New("festival.repository: failed to build query")
	ErrScanRow    = errors.New("festival.repository: failed to scan row")
)
