package middlewares

import "errors"

var (
	ErrEmptyField       = errors.New("all fields must be filled")
	ErrInvalidEmail     = errors.New("email is invalid")
	ErrLoginTooShort    = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrInvalidRole      = errors.New("role must be student or teacher")
	ErrNonPositive      = errors.New("amount must be positive")
	ErrEmptyReason      = errors.New("reason is required")
)
