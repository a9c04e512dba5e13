package services

import "errors"

// Common service errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrDuplicate       = errors.New("duplicate record")
	ErrInvalidAmount   = errors.New("please enter a valid amount")
	ErrExceedsBalance  = errors.New("amount cannot exceed remaining balance")
	ErrOutOfStock      = errors.New("product is out of stock")
)
