package product

import (
	"context"
	"fmt"
	"storefront-be/internal/logger"
	"storefront-be/internal/money"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

var maxVATRate = decimal.NewFromInt(100)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List clamps paging to [1, MaxListLimit] with DefaultListLimit when unset.
func (s *service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	filter.Query = strings.TrimSpace(filter.Query)

	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !params.VATRate.Valid {
		params.VATRate = decimal.NewNullDecimal(money.DefaultVATRate)
	}
	if err := validateAmounts(&params.Price, &params.VATRate.Decimal, &params.Stock); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Product, error) {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
		}
		params.Name = &name
	}
	if err := validateAmounts(params.Price, params.VATRate, params.Stock); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func validateAmounts(price, vatRate *decimal.Decimal, stock *int) error {
	if price != nil && price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if vatRate != nil && (vatRate.IsNegative() || vatRate.GreaterThan(maxVATRate)) {
		return fmt.Errorf("%w: vat_rate must be between 0 and 100", ErrInvalidProduct)
	}
	if stock != nil && *stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}
