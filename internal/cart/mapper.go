package cart

import (
	"storefront-be/internal/money"
	"storefront-be/internal/product"
)

// ToCartView renders a cart from its stored rows. Line and aggregate amounts
// are computed from the stored unit price and the product's current VAT rate.
func ToCartView(c *Cart, rows []CartRow) *CartView {
	items := make([]ItemView, 0, len(rows))
	lines := make([]money.Line, 0, len(rows))

	for _, r := range rows {
		line := money.Line{
			UnitPrice: r.UnitPrice,
			Quantity:  r.Quantity,
			VATRate:   money.RateOrDefault(r.ProductVATRate),
		}
		lines = append(lines, line)

		items = append(items, ItemView{
			ID:          r.ItemID,
			ProductID:   r.ProductID,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			LineAmounts: line.Amounts(),
			Product: product.Product{
				ID:       r.ProductID,
				Name:     r.ProductName,
				Price:    r.ProductPrice,
				VATRate:  r.ProductVATRate,
				Size:     r.ProductSize,
				ImageURL: r.ProductImageURL,
			}.Mini(),
		})
	}

	return &CartView{
		ID:     c.ID,
		Status: c.Status,
		Items:  items,
		Totals: money.Sum(lines),
	}
}
