package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]struct{}{
	StatusCreated:   {},
	StatusPaid:      {},
	StatusShipped:   {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseStatus accepts exactly one of the five order statuses.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := validStatuses[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Order struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItem     `json:"items"`
}

// OrderItem is frozen at checkout. ProductName is read live from the catalog
// and is nil once the product is gone.
type OrderItem struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"-"`
	ProductID   uint            `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	ProductName *string         `json:"product_name"`
}

// checkoutLine is one cart line as read under the checkout lock.
type checkoutLine struct {
	ProductID   uint
	Quantity    int
	UnitPrice   decimal.Decimal
	VATRate     decimal.NullDecimal
	ProductName *string
}
