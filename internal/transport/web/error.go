package web

import "errors"

var (
	ErrPanic          = errors.New("panic recovered")
	ErrBadRequestBody = errors.New("malformed request body")
	ErrBadParam       = errors.New("malformed query parameter")
)
