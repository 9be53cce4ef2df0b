package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ResolveActiveCart(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, params AddItemParams) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID uint) error
	ClearItems(ctx context.Context, cartID uint) error
	GetCartRows(ctx context.Context, cartID uint) ([]CartRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectActiveCart = `
	SELECT id, user_id, status, created_at
	FROM carts
	WHERE user_id = $1 AND status = 'active'
	ORDER BY id DESC
	LIMIT 1
`

// ResolveActiveCart returns the user's active cart, creating it on first use.
// Concurrent creators collide on carts_one_active_per_user; the loser re-reads
// the winner's row.
func (r *repository) ResolveActiveCart(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ResolveActiveCart"),
		zap.Uint("user_id", userID),
	)

	c, err := scanCart(r.db.QueryRowContext(ctx, selectActiveCart, userID))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to query active cart", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedResolveCart, err)
	}

	c, err = scanCart(r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, status)
		VALUES ($1, 'active')
		ON CONFLICT (user_id) WHERE status = 'active' DO NOTHING
		RETURNING id, user_id, status, created_at
	`, userID))
	if err == nil {
		log.Info("active cart created", zap.Uint("cart_id", c.ID))
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to create cart", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedResolveCart, err)
	}

	c, err = scanCart(r.db.QueryRowContext(ctx, selectActiveCart, userID))
	if err != nil {
		log.Error("failed to re-read active cart after conflict", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedResolveCart, err)
	}
	return c, nil
}

func (r *repository) AddItem(ctx context.Context, params AddItemParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.Uint("cart_id", params.CartID),
		zap.Uint("product_id", params.ProductID),
	)

	if params.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockActiveCart(ctx, tx, params.CartID); err != nil {
			return err
		}

		// unit_price is only written on insert; an existing line keeps its snapshot.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		`, params.CartID, params.ProductID, params.Quantity, params.UnitPrice)
		if err != nil {
			log.Error("failed to upsert cart item", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedCreateCartItem, err)
		}
		return nil
	})
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateItemQuantity"),
		zap.Uint("cart_id", cartID),
		zap.Uint("item_id", itemID),
	)

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockActiveCart(ctx, tx, cartID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE cart_items
			SET quantity = $1
			WHERE id = $2 AND cart_id = $3
		`, quantity, itemID, cartID)
		if err != nil {
			log.Error("failed to update cart item", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
		}

		return requireAffected(res)
	})
}

func (r *repository) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RemoveItem"),
		zap.Uint("cart_id", cartID),
		zap.Uint("item_id", itemID),
	)

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockActiveCart(ctx, tx, cartID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			DELETE FROM cart_items
			WHERE id = $1 AND cart_id = $2
		`, itemID, cartID)
		if err != nil {
			log.Error("failed to delete cart item", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedRemoveCart, err)
		}

		return requireAffected(res)
	})
}

// ClearItems empties the cart. Clearing an empty cart is not an error.
func (r *repository) ClearItems(ctx context.Context, cartID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ClearItems"),
		zap.Uint("cart_id", cartID),
	)

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockActiveCart(ctx, tx, cartID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
		if err != nil {
			log.Error("failed to clear cart", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
		}

		if n, err := res.RowsAffected(); err == nil {
			log.Debug("cart cleared", zap.Int64("removed", n))
		}
		return nil
	})
}

func (r *repository) GetCartRows(ctx context.Context, cartID uint) ([]CartRow, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartRows"),
		zap.Uint("cart_id", cartID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.id,
			ci.product_id,
			ci.quantity,
			ci.unit_price,
			p.name,
			p.price,
			p.vat_rate,
			p.size,
			p.image_url
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		log.Error("failed to query cart rows", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}
	defer rows.Close()

	result := make([]CartRow, 0)
	for rows.Next() {
		var row CartRow
		if err := rows.Scan(
			&row.ItemID,
			&row.ProductID,
			&row.Quantity,
			&row.UnitPrice,
			&row.ProductName,
			&row.ProductPrice,
			&row.ProductVATRate,
			&row.ProductSize,
			&row.ProductImageURL,
		); err != nil {
			log.Error("failed to scan cart row", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}

	return result, nil
}

// lockActiveCart takes the row lock every cart mutation serializes on. It
// fails with ErrCartNotActive once checkout has converted the cart.
func lockActiveCart(ctx context.Context, tx *sql.Tx, cartID uint) error {
	var id uint
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM carts
		WHERE id = $1 AND status = 'active'
		FOR UPDATE
	`, cartID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartNotActive
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func scanCart(row *sql.Row) (*Cart, error) {
	var c Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
