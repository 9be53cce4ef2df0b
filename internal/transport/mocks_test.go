package transport

import (
	"context"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (*user.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ResolvePrincipal(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) view(args mock.Arguments) (*cart.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartView), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, userID uint) (*cart.CartView, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*cart.CartView, error) {
	return m.view(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*cart.CartView, error) {
	return m.view(m.Called(ctx, userID, itemID, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, itemID uint) (*cart.CartView, error) {
	return m.view(m.Called(ctx, userID, itemID))
}

func (m *MockCartService) ClearCart(ctx context.Context, userID uint) (*cart.CartView, error) {
	return m.view(m.Called(ctx, userID))
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) one(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) many(args mock.Arguments) ([]*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, userID uint) (*order.Order, error) {
	return m.one(m.Called(ctx, userID))
}

func (m *MockOrderService) ListMine(ctx context.Context, userID uint) ([]*order.Order, error) {
	return m.many(m.Called(ctx, userID))
}

func (m *MockOrderService) GetForUser(ctx context.Context, orderID, userID uint) (*order.Order, error) {
	return m.one(m.Called(ctx, orderID, userID))
}

func (m *MockOrderService) GetForAdmin(ctx context.Context, orderID uint) (*order.Order, error) {
	return m.one(m.Called(ctx, orderID))
}

func (m *MockOrderService) ListAll(ctx context.Context, status string) ([]*order.Order, error) {
	return m.many(m.Called(ctx, status))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*order.Order, error) {
	return m.one(m.Called(ctx, orderID, status))
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, filter string) ([]*category.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name string) (*category.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Rename(ctx context.Context, id uint, name string) (*category.Category, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, params product.CreateParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uint, params product.UpdateParams) (*product.Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
