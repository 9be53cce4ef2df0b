package order

import (
	"context"
	"database/sql"
	"errors"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Checkout(ctx context.Context, userID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context, status string) ([]*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) (Status, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, total, status, created_at`

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.listOrders(ctx, "ListByUser", `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY id DESC
	`, userID)
}

// ListAll returns every order, newest first. A non-empty status is matched
// exactly.
func (r *repository) ListAll(ctx context.Context, status string) ([]*Order, error) {
	if status == "" {
		return r.listOrders(ctx, "ListAll", `
			SELECT `+orderColumns+`
			FROM orders
			ORDER BY id DESC
		`)
	}

	return r.listOrders(ctx, "ListAll", `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY id DESC
	`, status)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	orders, err := r.listOrders(ctx, "GetByID", `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return orders[0], nil
}

// UpdateStatus overwrites the status and returns the previous one.
func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) (Status, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", id),
	)

	var previous Status
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT status FROM orders WHERE id = $1 FOR UPDATE
		`, id).Scan(&previous)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $1 WHERE id = $2
		`, status, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			log.Error("failed to update order status", zap.Error(err))
		}
		return "", err
	}

	return previous, nil
}

func (r *repository) listOrders(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			log.Error("failed to scan order", zap.Error(err))
			return nil, err
		}
		o.Items = []OrderItem{}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// attachItems loads the items of all orders with one query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, int64(o.ID))
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.id,
			oi.order_id,
			oi.product_id,
			oi.quantity,
			oi.unit_price,
			oi.vat_rate,
			p.name
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.Quantity,
			&it.UnitPrice,
			&it.VATRate,
			&it.ProductName,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}

	return rows.Err()
}
