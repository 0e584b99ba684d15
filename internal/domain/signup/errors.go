package signup

import "errors"

var (
	ErrInvalidAction = errors.New("action must be approve or decline")
	ErrNotPending    = errors.New("signup request is not pending")
)
