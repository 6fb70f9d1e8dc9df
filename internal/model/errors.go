package model

import "errors"

// Domain rule violations. Handlers map these onto 400/409 responses.
var (
	// ErrBrandMismatch is returned when a category or line assigned to a
	// product belongs to a different brand than the product
	ErrBrandMismatch = errors.New("the category or line must belong to the same brand as the product")

	// ErrInsufficientStock is returned when a stock decrease would drive
	// the stock below zero
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity is returned for zero or negative stock movements
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrOrphanedSaleLine is returned when a sale line is missing its
	// product or its back-reference to the owning sale
	ErrOrphanedSaleLine = errors.New("sale line is missing its product or sale reference")
)
