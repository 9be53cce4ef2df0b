package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("order belongs to another user")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("invalid order status: must be one of created, paid, shipped, delivered, cancelled")
)
