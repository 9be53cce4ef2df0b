package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront-be/internal/logger"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Reader is the read side of the catalog used by cart and checkout.
type Reader interface {
	GetByID(ctx context.Context, id uint) (*Product, error)
}

type Repository interface {
	Reader
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, category_id, name, description, price, vat_rate, stock, size, image_url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.VATRate,
		&p.Stock,
		&p.Size,
		&p.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.Uint("product_id", id),
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found")
			return nil, ErrProductNotFound
		}
		log.Error("failed to load product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("query", filter.Query),
		zap.Int("skip", filter.Skip),
		zap.Int("limit", filter.Limit),
	)

	query := `SELECT ` + productColumns + ` FROM products`
	where := []string{}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0, filter.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", params.Name),
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		INSERT INTO products (category_id, name, description, price, vat_rate, stock, size, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		params.CategoryID, params.Name, params.Description, params.Price,
		params.VATRate, params.Stock, params.Size, params.ImageURL,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownCategory
		}
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

// Update writes only the fields set in params. An empty patch returns the
// current row.
func (r *repository) Update(ctx context.Context, id uint, params UpdateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.CategoryID != nil {
		set("category_id", *params.CategoryID)
	}
	if params.Name != nil {
		set("name", *params.Name)
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.Price != nil {
		set("price", *params.Price)
	}
	if params.VATRate != nil {
		set("vat_rate", *params.VATRate)
	}
	if params.Stock != nil {
		set("stock", *params.Stock)
	}
	if params.Size != nil {
		set("size", *params.Size)
	}
	if params.ImageURL != nil {
		set("image_url", *params.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns,
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownCategory
		}
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.Uint("product_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductInUse
		}
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}

	log.Info("product deleted")
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation
}
