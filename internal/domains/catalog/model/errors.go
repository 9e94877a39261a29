package model

import "errors"

var ErrCatalogUnavailable = errors.New("catalog unavailable")
