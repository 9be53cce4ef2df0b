package product

import (
	"storefront-be/internal/money"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint                `json:"id"`
	CategoryID  *uint               `json:"category_id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	VATRate     decimal.NullDecimal `json:"vat_rate"`
	Stock       int                 `json:"stock"`
	Size        *string             `json:"size,omitempty"`
	ImageURL    *string             `json:"image_url,omitempty"`
}

// Mini is the product summary embedded in cart lines. VATRate is the
// effective rate, with the default applied.
type Mini struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	VATRate  decimal.Decimal `json:"vat_rate"`
	Size     *string         `json:"size"`
	ImageURL *string         `json:"image_url"`
}

func (p Product) Mini() Mini {
	return Mini{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		VATRate:  money.RateOrDefault(p.VATRate),
		Size:     p.Size,
		ImageURL: p.ImageURL,
	}
}

// ListFilter narrows the catalog listing. Limit and Skip are normalized by
// the service before they reach the repository.
type ListFilter struct {
	Query      string
	CategoryID *uint
	Skip       int
	Limit      int
}

type CreateParams struct {
	CategoryID  *uint
	Name        string
	Description *string
	Price       decimal.Decimal
	VATRate     decimal.NullDecimal
	Stock       int
	Size        *string
	ImageURL    *string
}

// UpdateParams is a partial update; nil fields are left untouched.
type UpdateParams struct {
	CategoryID  *uint
	Name        *string
	Description *string
	Price       *decimal.Decimal
	VATRate     *decimal.Decimal
	Stock       *int
	Size        *string
	ImageURL    *string
}
