package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrProductInUse    = errors.New("product is referenced by carts or orders")

	PgForeignKeyViolation = "23503"
)
