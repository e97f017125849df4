package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrProductNotFound = errors.New("product not found")
	ErrDesignNotFound  = errors.New("design not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrCustomDesignNotFound = errors.New("custom design not found")

	ErrEmptyOrder      = errors.New("order must contain items")
	ErrInvalidQuantity = errors.New("line item quantity must be at least 1")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrOrderClosed     = errors.New("order is already delivered or cancelled")
	ErrOutOfStock      = errors.New("insufficient stock")

	ErrInvalidAmount       = errors.New("invalid withdrawal amount")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	ErrAccessDenied = errors.New("access denied")
)
