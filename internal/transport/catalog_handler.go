package transport

import (
	"fmt"
	"net/http"
	"storefront-be/internal/category"
	"storefront-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type catalogHandler struct {
	categories category.Service
	products   product.Service
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type listProductsQuery struct {
	Q          string `form:"q"`
	CategoryID *uint  `form:"category_id" binding:"omitempty,max=2147483647"`
	Skip       int    `form:"skip" binding:"min=0"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// productRequest serves both create and partial update.
type productRequest struct {
	CategoryID  *uint            `json:"category_id" binding:"omitempty,max=2147483647"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	VATRate     *decimal.Decimal `json:"vat_rate"`
	Stock       *int             `json:"stock"`
	Size        *string          `json:"size"`
	ImageURL    *string          `json:"image_url"`
}

func (h *catalogHandler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *catalogHandler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *catalogHandler) renameCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	cat, err := h.categories.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *catalogHandler) deleteCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *catalogHandler) listProducts(c *gin.Context) {
	var q listProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithBindError(c, err)
		return
	}

	products, err := h.products.List(c.Request.Context(), product.ListFilter{
		Query:      q.Q,
		CategoryID: q.CategoryID,
		Skip:       q.Skip,
		Limit:      q.Limit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *catalogHandler) getProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *catalogHandler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if req.Name == nil || req.Price == nil {
		abortWithError(c, fmt.Errorf("%w: name and price are required", product.ErrInvalidProduct))
		return
	}

	params := product.CreateParams{
		CategoryID:  req.CategoryID,
		Name:        *req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Size:        req.Size,
		ImageURL:    req.ImageURL,
	}
	if req.VATRate != nil {
		params.VATRate = decimal.NewNullDecimal(*req.VATRate)
	}
	if req.Stock != nil {
		params.Stock = *req.Stock
	}

	p, err := h.products.Create(c.Request.Context(), params)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *catalogHandler) updateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, product.UpdateParams{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		VATRate:     req.VATRate,
		Stock:       req.Stock,
		Size:        req.Size,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *catalogHandler) deleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
