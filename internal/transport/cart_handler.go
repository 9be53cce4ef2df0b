package transport

import (
	"net/http"
	"storefront-be/internal/cart"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type cartHandler struct {
	carts cart.Service
}

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required,max=2147483647"`
	Quantity  *int `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *cartHandler) get(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	view, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *cartHandler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	view, err := h.carts.AddItem(c.Request.Context(), userID, req.ProductID, quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *cartHandler) updateItem(c *gin.Context) {
	itemID, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	view, err := h.carts.UpdateItem(c.Request.Context(), userID, itemID, *req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *cartHandler) removeItem(c *gin.Context) {
	itemID, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	view, err := h.carts.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *cartHandler) clear(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	view, err := h.carts.ClearCart(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func pathID(c *gin.Context) (uint, error) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}
