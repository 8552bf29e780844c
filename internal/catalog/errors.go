package catalog

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrDuplicateBarcode  = errors.New("barcode already exists")
	ErrPriceBelowCost    = errors.New("selling price cannot be less than cost price")
	ErrInvalidAmount     = errors.New("cost and price must be non-negative amounts")
	ErrProductReferenced = errors.New("product is referenced by sales or purchase orders")
)
