package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeIDExists    = errors.New("employee id already registered")
	ErrEmployeeNotApproved = errors.New("employee is not approved")
	ErrAlreadyApproved     = errors.New("employee is already approved")
)
