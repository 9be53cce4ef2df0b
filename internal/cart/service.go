package cart

import (
	"context"
	"errors"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts. Every operation acts on the
// caller's active cart and returns it freshly reloaded.
type Service interface {
	GetCart(ctx context.Context, userID uint) (*CartView, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartView, error)
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, userID, itemID uint) (*CartView, error)
	ClearCart(ctx context.Context, userID uint) (*CartView, error)
}

type service struct {
	repo        Repository
	productRepo product.Reader
	metrics     *metrics.Metrics
}

func NewService(repo Repository, productRepo product.Reader, m *metrics.Metrics) Service {
	return &service{repo: repo, productRepo: productRepo, metrics: m}
}

func (s *service) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	c, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, c)
}

// AddItem puts productID into the cart. Quantities below one count as one; a
// product already in the cart has its line incremented.
func (s *service) AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartView, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
	)

	if quantity < 1 {
		quantity = 1
	}

	c, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			log.Info("add item rejected: unknown product")
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	err = s.repo.AddItem(ctx, AddItemParams{
		CartID:    c.ID,
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: p.Price,
	})
	s.metrics.CartMutation("add_item", err)
	if err != nil {
		log.Warn("add item failed", zap.Error(err))
		return nil, err
	}

	log.Info("item added to cart", zap.Uint("cart_id", c.ID), zap.Int("quantity", quantity))
	return s.render(ctx, c)
}

// UpdateItem overwrites the line quantity. A quantity of zero or less removes
// the line.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	c, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.UpdateItemQuantity(ctx, c.ID, itemID, quantity)
	s.metrics.CartMutation("update_item", err)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, c)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uint) (*CartView, error) {
	c, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.RemoveItem(ctx, c.ID, itemID)
	s.metrics.CartMutation("remove_item", err)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, c)
}

func (s *service) ClearCart(ctx context.Context, userID uint) (*CartView, error) {
	c, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.ClearItems(ctx, c.ID)
	s.metrics.CartMutation("clear", err)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, c)
}

func (s *service) activeCart(ctx context.Context, userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.ResolveActiveCart(ctx, userID)
}

func (s *service) render(ctx context.Context, c *Cart) (*CartView, error) {
	rows, err := s.repo.GetCartRows(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return ToCartView(c, rows), nil
}
