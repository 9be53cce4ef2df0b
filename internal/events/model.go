package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreated struct {
	OrderID   uint            `json:"order_id"`
	UserID    uint            `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderStatusChanged struct {
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}
