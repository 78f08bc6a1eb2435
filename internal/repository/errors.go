package repository

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemUnavailable    = errors.New("item is not available")
	ErrSizeUnavailable    = errors.New("size is not available for this item")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrSessionNotFound    = errors.New("session not found")
)
