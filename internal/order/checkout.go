package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront-be/internal/logger"
	"storefront-be/internal/money"

	"go.uber.org/zap"
)

// Checkout converts the user's active cart into an order in one transaction.
// The cart row stays locked until commit, so a concurrent checkout of the same
// cart waits and then sees no active cart.
func (r *repository) Checkout(ctx context.Context, userID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Lock the active cart
	var cartID uint
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM carts
		WHERE user_id = $1 AND status = 'active'
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE
	`, userID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("checkout rejected: no active cart")
		return nil, ErrEmptyCart
	}
	if err != nil {
		log.Error("failed to lock cart", zap.Error(err))
		return nil, err
	}

	// 2. Snapshot lines
	lines, err := loadCheckoutLines(ctx, tx, cartID)
	if err != nil {
		log.Error("failed to load cart lines", zap.Uint("cart_id", cartID), zap.Error(err))
		return nil, err
	}

	o, err := buildOrder(userID, lines)
	if err != nil {
		log.Info("checkout rejected", zap.Uint("cart_id", cartID), zap.Error(err))
		return nil, err
	}

	// 3. Insert order and items
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, o.UserID, o.Total, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, vat_rate)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.VATRate).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Uint("product_id", item.ProductID), zap.Error(err))
			return nil, err
		}
	}

	// 4. Convert the cart
	if _, err = tx.ExecContext(ctx, `
		UPDATE carts SET status = 'converted' WHERE id = $1
	`, cartID); err != nil {
		log.Error("failed to convert cart", zap.Uint("cart_id", cartID), zap.Error(err))
		return nil, err
	}

	// 5. Commit
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout", zap.Error(err))
		return nil, err
	}

	log.Info("cart converted to order",
		zap.Uint("cart_id", cartID),
		zap.Uint("order_id", o.ID),
		zap.String("total", o.Total.String()),
	)
	return o, nil
}

func loadCheckoutLines(ctx context.Context, tx *sql.Tx, cartID uint) ([]checkoutLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT
			ci.product_id,
			ci.quantity,
			ci.unit_price,
			p.vat_rate,
			p.name
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var l checkoutLine
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UnitPrice, &l.VATRate, &l.ProductName); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// buildOrder snapshots cart lines into order items. The total is net plus VAT
// over all lines, rounded to cents once.
func buildOrder(userID uint, lines []checkoutLine) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(lines))
	priced := make([]money.Line, 0, len(lines))

	for _, l := range lines {
		line := money.Line{
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			VATRate:   money.RateOrDefault(l.VATRate),
		}
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", l.ProductID, err)
		}
		priced = append(priced, line)

		items = append(items, OrderItem{
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitPrice:   line.UnitPrice,
			VATRate:     line.VATRate,
			ProductName: l.ProductName,
		})
	}

	totals := money.Sum(priced)

	return &Order{
		UserID: userID,
		Total:  totals.Gross.Round(2),
		Status: StatusCreated,
		Items:  items,
	}, nil
}
