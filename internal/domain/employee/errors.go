package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeTypeNotFound = errors.New("employee type not found")
	ErrEmployeeInactive     = errors.New("employee is not active")
)
