package transport

import (
	"errors"
	"net/http"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

func statusFor(err error) int {
	switch {
	case errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, middleware.ErrAdminRequired):
		return http.StatusForbidden

	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, product.ErrUnknownCategory),
		errors.Is(err, category.ErrInvalidName),
		errors.Is(err, category.ErrCategoryExists),
		errors.Is(err, errInvalidID):
		return http.StatusBadRequest

	case errors.Is(err, cart.ErrCartNotActive),
		errors.Is(err, product.ErrProductInUse):
		return http.StatusConflict

	case errors.Is(err, user.ErrUnauthorized),
		errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, cart.ErrUserNotAuthenticated),
		errors.Is(err, order.ErrUnauthorized):
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

// abortWithError writes {"detail": ...}. Server-side failures are logged and
// replaced with a generic message.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := err.Error()

	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		detail = "internal server error"
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func abortWithBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}
