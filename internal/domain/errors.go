package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmailAlreadyExists  = errors.New("email is already registered")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("access denied")
	ErrConflict            = errors.New("conflict with current state")
	ErrOrderLocked         = errors.New("order is locked")
	ErrServerConfiguration = errors.New("server configuration incomplete")
)
