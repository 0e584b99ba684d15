package auth

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrEmployeeIDMismatch = errors.New("token does not belong to this employee")
)
