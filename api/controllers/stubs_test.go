package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/angelmondragon/farmtofork-backend/internal/inventory"
	"github.com/angelmondragon/farmtofork-backend/internal/orders"
	"github.com/angelmondragon/farmtofork-backend/internal/products"
	"github.com/angelmondragon/farmtofork-backend/internal/users"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	routeCtx := chi.NewRouteContext()
	for k, v := range params {
		routeCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type stubUserService struct {
	registered users.RegisterInput
	login      *users.LoginResult
	err        error
}

func (s *stubUserService) Register(_ context.Context, input users.RegisterInput) (*users.UserDTO, error) {
	s.registered = input
	if s.err != nil {
		return nil, s.err
	}
	return &users.UserDTO{ID: 1, Name: input.Name, Email: input.Email, Role: input.Role}, nil
}

func (s *stubUserService) Login(context.Context, users.LoginInput) (*users.LoginResult, error) {
	return s.login, s.err
}

func (s *stubUserService) List(context.Context) ([]users.UserDTO, error) {
	return []users.UserDTO{}, s.err
}

type stubProductService struct {
	created products.CreateProductInput
	product *products.ProductDTO
	filter  products.ListFilter
	err     error
}

func (s *stubProductService) CreateProduct(_ context.Context, input products.CreateProductInput) (*products.ProductDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &products.ProductDTO{ID: 9, Name: input.Name, CropType: input.CropType, Category: input.CropType}, nil
}

func (s *stubProductService) GetProduct(context.Context, int64) (*products.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubProductService) ListProducts(_ context.Context, filter products.ListFilter) ([]products.ProductDTO, error) {
	s.filter = filter
	return []products.ProductDTO{}, s.err
}

type stubInventoryService struct {
	added   inventory.AddInventoryInput
	updated inventory.UpdateInventoryInput
	deleted int64
	err     error
}

func (s *stubInventoryService) AddInventory(_ context.Context, input inventory.AddInventoryInput) (*inventory.InventoryDTO, error) {
	s.added = input
	if s.err != nil {
		return nil, s.err
	}
	dto := &inventory.InventoryDTO{ID: 1, Quantity: input.Quantity}
	if input.Stage != nil {
		dto.Stage = *input.Stage
	}
	return dto, nil
}

func (s *stubInventoryService) UpdateInventory(_ context.Context, id int64, input inventory.UpdateInventoryInput) (*inventory.InventoryDTO, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &inventory.InventoryDTO{ID: id}, nil
}

func (s *stubInventoryService) ListInventory(context.Context) ([]inventory.InventoryDTO, error) {
	return []inventory.InventoryDTO{}, s.err
}

func (s *stubInventoryService) ListByOwner(context.Context, int64) ([]inventory.InventoryDTO, error) {
	return []inventory.InventoryDTO{}, s.err
}

func (s *stubInventoryService) DeleteInventory(_ context.Context, id int64) error {
	s.deleted = id
	return s.err
}

type stubOrderService struct {
	created orders.CreateOrderInput
	status  string
	err     error
}

func (s *stubOrderService) CreateOrder(_ context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderDTO{ID: 1, CustomerID: input.CustomerID, Status: "CREATED"}, nil
}

func (s *stubOrderService) GetOrder(_ context.Context, id int64) (*orders.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderDTO{ID: id}, nil
}

func (s *stubOrderService) ListOrders(context.Context) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, s.err
}

func (s *stubOrderService) ListOrdersByCustomer(context.Context, int64) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, s.err
}

func (s *stubOrderService) UpdateOrderStatus(_ context.Context, id int64, status string) (*orders.OrderDTO, error) {
	s.status = status
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderDTO{ID: id, Status: status}, nil
}

func (s *stubOrderService) DeleteOrder(context.Context, int64) error {
	return s.err
}
