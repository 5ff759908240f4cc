package intervals

import "errors"

// ErrInternal возвращается при ошибке хранилища
var ErrInternal = errors.New("intervals: internal error")
