package errors

import "errors"

var (
	ErrTokenRequired       = errors.New("firebase token is required")
	ErrInvalidDeviceInput  = errors.New("invalid device input")
	ErrDeviceNotRegistered = errors.New("device is not registered")
)
