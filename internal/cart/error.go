package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartNotActive    = errors.New("cart is no longer active")
	ErrProductNotFound  = errors.New("product not found")

	// -- Database & Operation Failures --
	ErrFailedResolveCart    = errors.New("failed to resolve active cart")
	ErrFailedGetCartRows    = errors.New("failed to get cart rows")
	ErrFailedCreateCartItem = errors.New("failed to create cart item")
	ErrFailedUpdateCart     = errors.New("failed to update cart item")
	ErrFailedRemoveCart     = errors.New("failed to remove cart item")
	ErrFailedClearCart      = errors.New("failed to clear cart")
)
