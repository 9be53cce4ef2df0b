package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	users      *MockUserService
	categories *MockCategoryService
	products   *MockProductService
	carts      *MockCartService
	orders     *MockOrderService
	handler    http.Handler
}

func newFixture(t *testing.T, services ...string) *fixture {
	t.Helper()
	if len(services) == 0 {
		services = []string{config.ServiceAuth, config.ServiceCatalog, config.ServiceCart, config.ServiceOrder}
	}

	f := &fixture{
		users:      new(MockUserService),
		categories: new(MockCategoryService),
		products:   new(MockProductService),
		carts:      new(MockCartService),
		orders:     new(MockOrderService),
	}

	// customer token "cust" → user 1, admin token "adm" → user 9
	f.users.On("ResolvePrincipal", mock.Anything, "cust").Return(&user.User{ID: 1, Email: "c@example.com"}, nil).Maybe()
	f.users.On("ResolvePrincipal", mock.Anything, "adm").Return(&user.User{ID: 9, Email: "a@example.com", IsAdmin: true}, nil).Maybe()
	f.users.On("ResolvePrincipal", mock.Anything, mock.Anything).Return(nil, user.ErrUnauthorized).Maybe()

	f.handler = NewHandler(Deps{
		Config: &config.Config{
			AppEnv:       "development",
			Services:     services,
			CORSOrigins:  []string{"http://localhost:5173"},
			JWTExpiresIn: time.Hour,
		},
		Users:      f.users,
		Categories: f.categories,
		Products:   f.products,
		Carts:      f.carts,
		Orders:     f.orders,
		Metrics:    metrics.New(prometheus.NewRegistry()),
		Limiter:    middleware.NewLimiter(1000, 1000),
	})
	return f
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["detail"]
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = f.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")
}

func TestAuthRoutes(t *testing.T) {
	t.Run("Signup", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("Register", mock.Anything, user.RegisterInput{Email: "new@example.com", Password: "pw"}).
			Return(&user.User{ID: 3, Email: "new@example.com"}, nil)

		w := f.do(http.MethodPost, "/signup", "", map[string]any{"email": "new@example.com", "password": "pw"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Signup duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrEmailExists)

		w := f.do(http.MethodPost, "/signup", "", map[string]any{"email": "dup@example.com", "password": "pw"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, user.ErrEmailExists.Error(), detail(t, w))
	})

	t.Run("Signup invalid email", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPost, "/signup", "", map[string]any{"email": "nope", "password": "pw"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login sets cookie", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("Login", mock.Anything, "c@example.com", "pw").Return("signed", &user.User{ID: 1}, nil)

		w := f.do(http.MethodPost, "/login", "", map[string]any{"email": "c@example.com", "password": "pw"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"access_token":"signed","token_type":"bearer"}`, w.Body.String())
		assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=signed")
	})

	t.Run("Login bad credentials", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("Login", mock.Anything, "c@example.com", "bad").Return("", nil, user.ErrInvalidCredentials)

		w := f.do(http.MethodPost, "/login", "", map[string]any{"email": "c@example.com", "password": "bad"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Me", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetByID", mock.Anything, uint(1)).Return(&user.User{ID: 1, Email: "c@example.com"}, nil)

		w := f.do(http.MethodGet, "/me", "cust", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "c@example.com")
	})
}

func TestCartRoutes(t *testing.T) {
	view := &cart.CartView{ID: 5, Status: cart.StatusActive, Items: []cart.ItemView{}}

	t.Run("Requires token", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodGet, "/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Get cart", func(t *testing.T) {
		f := newFixture(t)
		f.carts.On("GetCart", mock.Anything, uint(1)).Return(view, nil)

		w := f.do(http.MethodGet, "/cart", "cust", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totals"`)
	})

	t.Run("Add item defaults quantity", func(t *testing.T) {
		f := newFixture(t)
		f.carts.On("AddItem", mock.Anything, uint(1), uint(9), 1).Return(view, nil)

		w := f.do(http.MethodPost, "/cart/items", "cust", map[string]any{"product_id": 9})

		assert.Equal(t, http.StatusCreated, w.Code)
		f.carts.AssertExpectations(t)
	})

	t.Run("Add unknown product", func(t *testing.T) {
		f := newFixture(t)
		f.carts.On("AddItem", mock.Anything, uint(1), uint(404), 2).Return(nil, cart.ErrProductNotFound)

		w := f.do(http.MethodPost, "/cart/items", "cust", map[string]any{"product_id": 404, "quantity": 2})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update to zero", func(t *testing.T) {
		f := newFixture(t)
		f.carts.On("UpdateItem", mock.Anything, uint(1), uint(11), 0).Return(view, nil)

		w := f.do(http.MethodPut, "/cart/items/11", "cust", map[string]any{"quantity": 0})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Update without quantity", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPut, "/cart/items/11", "cust", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Remove from converted cart", func(t *testing.T) {
		f := newFixture(t)
		f.carts.On("RemoveItem", mock.Anything, uint(1), uint(11)).Return(nil, cart.ErrCartNotActive)

		w := f.do(http.MethodDelete, "/cart/items/11", "cust", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid item id", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodDelete, "/cart/items/abc", "cust", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Product id beyond integer range", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPost, "/cart/items", "cust", map[string]any{"product_id": 4294967296})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Clear", func(t *testing.T) {
		f := newFixture(t)
		f.carts.On("ClearCart", mock.Anything, uint(1)).Return(view, nil)

		w := f.do(http.MethodDelete, "/cart/items", "cust", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	created := &order.Order{ID: 42, UserID: 1, Total: decimal.RequireFromString("92820.00"), Status: order.StatusCreated, Items: []order.OrderItem{}}

	t.Run("Checkout", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("Checkout", mock.Anything, uint(1)).Return(created, nil)

		w := f.do(http.MethodPost, "/orders/checkout", "cust", nil)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"total":"92820"`)
	})

	t.Run("Checkout empty cart", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("Checkout", mock.Anything, uint(1)).Return(nil, order.ErrEmptyCart)

		w := f.do(http.MethodPost, "/orders/checkout", "cust", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, order.ErrEmptyCart.Error(), detail(t, w))
	})

	t.Run("Foreign order", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("GetForUser", mock.Anything, uint(42), uint(1)).Return(nil, order.ErrForbidden)

		w := f.do(http.MethodGet, "/orders/42", "cust", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Order id beyond integer range", func(t *testing.T) {
		for _, id := range []string{"2147483648", "4294967296"} {
			f := newFixture(t)

			w := f.do(http.MethodGet, "/orders/"+id, "cust", nil)

			assert.Equal(t, http.StatusBadRequest, w.Code, id)
			f.orders.AssertNotCalled(t, "GetForUser", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("List mine", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("ListMine", mock.Anything, uint(1)).Return([]*order.Order{created}, nil)

		w := f.do(http.MethodGet, "/orders", "cust", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Admin routes reject customers", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodGet, "/admin/orders", "cust", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		f.orders.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
	})

	t.Run("Admin list with legacy filter", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("ListAll", mock.Anything, "paid").Return([]*order.Order{}, nil)

		w := f.do(http.MethodGet, "/admin/orders?status_filter=paid", "adm", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Admin detail", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("GetForAdmin", mock.Anything, uint(42)).Return(created, nil)

		w := f.do(http.MethodGet, "/admin/orders/42", "adm", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Admin invalid status", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("UpdateStatus", mock.Anything, uint(42), "bogus").Return(nil, order.ErrInvalidStatus)

		w := f.do(http.MethodPut, "/admin/orders/42/status", "adm", map[string]any{"status": "bogus"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Storage failure is hidden", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("ListMine", mock.Anything, uint(1)).Return(nil, errors.New("pq: connection refused"))

		w := f.do(http.MethodGet, "/orders", "cust", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", detail(t, w))
	})
}

func TestCatalogRoutes(t *testing.T) {
	t.Run("Public listing", func(t *testing.T) {
		f := newFixture(t)
		categoryID := uint(2)
		f.products.On("List", mock.Anything, product.ListFilter{Query: "shirt", CategoryID: &categoryID, Skip: 10, Limit: 5}).
			Return([]*product.Product{{ID: 1, Name: "Linen Shirt"}}, nil)

		w := f.do(http.MethodGet, "/products?q=shirt&category_id=2&skip=10&limit=5", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Linen Shirt")
	})

	t.Run("Limit over maximum", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodGet, "/products?limit=500", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown product", func(t *testing.T) {
		f := newFixture(t)
		f.products.On("Get", mock.Anything, uint(77)).Return(nil, product.ErrProductNotFound)

		w := f.do(http.MethodGet, "/products/77", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Create requires admin", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPost, "/products", "cust", map[string]any{"name": "Cap", "price": "12.00"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Create product", func(t *testing.T) {
		f := newFixture(t)
		f.products.On("Create", mock.Anything, mock.MatchedBy(func(p product.CreateParams) bool {
			return p.Name == "Cap" && p.Price.Equal(decimal.RequireFromString("12")) && !p.VATRate.Valid
		})).Return(&product.Product{ID: 8, Name: "Cap"}, nil)

		w := f.do(http.MethodPost, "/products", "adm", map[string]any{"name": "Cap", "price": 12})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Create without price", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(http.MethodPost, "/products", "adm", map[string]any{"name": "Cap"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete referenced product", func(t *testing.T) {
		f := newFixture(t)
		f.products.On("Delete", mock.Anything, uint(8)).Return(product.ErrProductInUse)

		w := f.do(http.MethodDelete, "/products/8", "adm", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Categories", func(t *testing.T) {
		f := newFixture(t)
		f.categories.On("List", mock.Anything, "").Return([]*category.Category{{ID: 1, Name: "Shirts"}}, nil)
		f.categories.On("Create", mock.Anything, "Shirts").Return(nil, category.ErrCategoryExists)
		f.categories.On("Delete", mock.Anything, uint(1)).Return(nil)

		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/categories", "", nil).Code)
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/categories", "adm", map[string]any{"name": "Shirts"}).Code)
		assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/categories/1", "adm", nil).Code)
	})
}

func TestServiceSelection(t *testing.T) {
	f := newFixture(t, config.ServiceCart)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/orders/checkout", "cust", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/login", "", map[string]any{}).Code)

	f.carts.On("GetCart", mock.Anything, uint(1)).Return(&cart.CartView{Items: []cart.ItemView{}}, nil)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/cart", "cust", nil).Code)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		cart.ErrCartItemNotFound:     http.StatusNotFound,
		cart.ErrProductNotFound:      http.StatusNotFound,
		order.ErrOrderNotFound:       http.StatusNotFound,
		order.ErrForbidden:           http.StatusForbidden,
		middleware.ErrAdminRequired:  http.StatusForbidden,
		order.ErrEmptyCart:           http.StatusBadRequest,
		order.ErrInvalidStatus:       http.StatusBadRequest,
		user.ErrEmailExists:          http.StatusBadRequest,
		cart.ErrCartNotActive:        http.StatusConflict,
		user.ErrUnauthorized:         http.StatusUnauthorized,
		user.ErrInvalidCredentials:   http.StatusUnauthorized,
		cart.ErrUserNotAuthenticated: http.StatusUnauthorized,
		errors.New("unexpected"):     http.StatusInternalServerError,
		cart.ErrFailedCreateCartItem: http.StatusInternalServerError,
		product.ErrProductInUse:      http.StatusConflict,
		category.ErrInvalidName:      http.StatusBadRequest,
	}

	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
