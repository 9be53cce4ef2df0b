package user

import (
	"context"
	"database/sql"
	"errors"
	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, hashed_password, full_name, is_admin, created_at`

func (r *repository) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	u, err := scanUser(r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, hashed_password, full_name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		params.Email, params.Password, params.FullName, params.IsAdmin,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.String("email", params.Email), zap.Error(err))
		return nil, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FullName,
		&u.IsAdmin,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
