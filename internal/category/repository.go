package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter string) ([]*Category, error)
	Create(ctx context.Context, name string) (*Category, error)
	Rename(ctx context.Context, id uint, name string) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List returns categories ordered by name, optionally filtered by a
// case-insensitive substring.
func (r *repository) List(ctx context.Context, filter string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("filter", filter),
	)

	query := `SELECT c.id, c.name FROM categories c`
	args := []any{}

	if filter != "" {
		query += " WHERE c.name ILIKE $1"
		args = append(args, "%"+filter+"%")
	}
	query += " ORDER BY c.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) Create(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("category_name", name),
	)

	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name
	`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		log.Error("failed to insert category", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("category created", zap.Uint("category_id", c.ID))
	return &c, nil
}

func (r *repository) Rename(ctx context.Context, id uint, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Rename"),
		zap.Uint("category_id", id),
	)

	var c Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories SET name = $1
		WHERE id = $2
		RETURNING id, name
	`, name, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		log.Error("failed to rename category", zap.Error(err))
		return nil, fmt.Errorf("rename category failed: %w", err)
	}

	return &c, nil
}

// Delete removes the category. Products keep existing with category_id
// set to NULL by the foreign key.
func (r *repository) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.Uint("category_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete category", zap.Error(err))
		return fmt.Errorf("delete category failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}

	log.Info("category deleted")
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation
}
