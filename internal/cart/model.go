package cart

import (
	"storefront-be/internal/money"
	"storefront-be/internal/product"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive    = "active"
	StatusConverted = "converted"
)

type Cart struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AddItemParams struct {
	CartID    uint
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

// CartRow is one stored cart line joined with its live product data.
type CartRow struct {
	ItemID    uint
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal

	ProductName     string
	ProductPrice    decimal.Decimal
	ProductVATRate  decimal.NullDecimal
	ProductSize     *string
	ProductImageURL *string
}

type ItemView struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	money.LineAmounts
	Product product.Mini `json:"product"`
}

type CartView struct {
	ID     uint         `json:"id"`
	Status string       `json:"status"`
	Items  []ItemView   `json:"items"`
	Totals money.Totals `json:"totals"`
}
