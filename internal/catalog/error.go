package catalog

import "errors"

var ErrUnknownSort = errors.New("unknown sort order")
