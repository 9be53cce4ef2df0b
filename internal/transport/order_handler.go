package transport

import (
	"net/http"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type orderHandler struct {
	orders order.Service
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *orderHandler) checkout(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	o, err := h.orders.Checkout(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *orderHandler) listMine(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orders, err := h.orders.ListMine(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) get(c *gin.Context) {
	orderID, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	o, err := h.orders.GetForUser(c.Request.Context(), orderID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

// listAll accepts the filter as ?status= or the older ?status_filter=.
func (h *orderHandler) listAll(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = c.Query("status_filter")
	}

	orders, err := h.orders.ListAll(c.Request.Context(), status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) getForAdmin(c *gin.Context) {
	orderID, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	o, err := h.orders.GetForAdmin(c.Request.Context(), orderID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *orderHandler) updateStatus(c *gin.Context) {
	orderID, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}
