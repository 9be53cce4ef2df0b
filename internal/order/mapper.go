package order

import (
	"storefront-be/internal/events"
	"time"
)

func toCreatedEvent(o *Order) events.OrderCreated {
	return events.OrderCreated{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		ItemCount: len(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

func toStatusChangedEvent(o *Order, from Status, at time.Time) events.OrderStatusChanged {
	return events.OrderStatusChanged{
		OrderID:   o.ID,
		UserID:    o.UserID,
		From:      string(from),
		To:        string(o.Status),
		ChangedAt: at,
	}
}
