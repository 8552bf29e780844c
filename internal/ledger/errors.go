package ledger

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrOrderNotFound     = errors.New("purchase order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidOrderState = errors.New("purchase order is in a terminal state")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidCost       = errors.New("cost per unit must be a non-negative amount")
)
