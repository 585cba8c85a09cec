package orders

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/farmtofork-backend/pkg/db"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/angelmondragon/farmtofork-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC)

type fixture struct {
	svc      Service
	conn     *gorm.DB
	reg      *prometheus.Registry
	logs     *bytes.Buffer
	customer models.User
	rice     models.Product
	tomato   models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := openTestDB(t)
	reg := prometheus.NewRegistry()
	logs := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: logs})

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), logg, metrics.NewOrderMetrics(reg), func() time.Time { return fixedNow })
	require.NoError(t, err)

	f := &fixture{svc: svc, conn: conn, reg: reg, logs: logs}
	f.customer = models.User{Name: "Consumer Alice", Email: "consumer@example.com", Role: "Consumer"}
	require.NoError(t, conn.Create(&f.customer).Error)
	f.rice = models.Product{Name: "Rice", CropType: "Grains", Price: decimal.NewNullDecimal(decimal.NewFromInt(10))}
	f.tomato = models.Product{Name: "Tomato", CropType: "Vegetables", Price: decimal.NewNullDecimal(decimal.NewFromInt(5))}
	require.NoError(t, conn.Create(&f.rice).Error)
	require.NoError(t, conn.Create(&f.tomato).Error)
	return f
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// counterValue sums the matching series, or returns 0 when none were recorded.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if label == "" || hasLabel(metric.GetLabel(), label, value) {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func hasLabel(pairs []*promdto.LabelPair, name, value string) bool {
	for _, pair := range pairs {
		if pair.GetName() == name && pair.GetValue() == value {
			return true
		}
	}
	return false
}

func (f *fixture) counts(t *testing.T) (orders, items int64) {
	t.Helper()
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, f.conn.Model(&models.OrderItem{}).Count(&items).Error)
	return orders, items
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	conn := openTestDB(t)
	logg := logger.New(logger.Options{})

	_, err := NewService(nil, db.NewWithConn(conn), logg, nil, nil)
	require.Error(t, err)
	_, err = NewService(NewRepository(conn), nil, logg, nil, nil)
	require.Error(t, err)
	_, err = NewService(NewRepository(conn), db.NewWithConn(conn), nil, nil, nil)
	require.Error(t, err)

	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), logg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestCreateOrderComputesTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	dto, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		CustomerID: f.customer.ID,
		Items: []OrderItemInput{
			{ProductID: f.rice.ID, Quantity: 2, Price: price("10")},
			{ProductID: f.tomato.ID, Quantity: 3, Price: price("5")},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, 35.0, dto.TotalAmount)
	assert.Equal(t, "CREATED", dto.Status)
	assert.Equal(t, f.customer.ID, dto.CustomerID)
	assert.Equal(t, "Consumer Alice", dto.CustomerName)
	assert.Equal(t, "2024-06-01 14:30:05", dto.CreatedAt)
	require.Len(t, dto.Items, 2)
	assert.Equal(t, f.rice.ID, dto.Items[0].ProductID)
	assert.Equal(t, "Rice", dto.Items[0].ProductName)
	assert.Equal(t, int64(2), dto.Items[0].Quantity)
	assert.Equal(t, 10.0, dto.Items[0].Price)
	assert.Equal(t, "Tomato", dto.Items[1].ProductName)

	var stored models.Order
	require.NoError(t, f.conn.First(&stored, dto.ID).Error)
	assert.True(t, decimal.NewFromInt(35).Equal(stored.TotalAmount))

	assert.Equal(t, 1.0, counterValue(t, f.reg, "orders_created_total", "", ""))
	assert.Contains(t, f.logs.String(), "order.created")
}

func TestCreateOrderUsesSuppliedPriceNotProductPrice(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: f.rice.ID, Quantity: 3, Price: price("7.25")}},
	})
	require.NoError(t, err)
	assert.Equal(t, 21.75, dto.TotalAmount)
	assert.Equal(t, 7.25, dto.Items[0].Price)
}

func TestCreateOrderTotalMatchesItems(t *testing.T) {
	f := newFixture(t)
	lines := []OrderItemInput{
		{ProductID: f.rice.ID, Quantity: 1, Price: price("0.10")},
		{ProductID: f.rice.ID, Quantity: 7, Price: price("0.20")},
		{ProductID: f.tomato.ID, Quantity: 11, Price: price("3.33")},
	}

	dto, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{CustomerID: f.customer.ID, Items: lines})
	require.NoError(t, err)

	var items []models.OrderItem
	require.NoError(t, f.conn.Where("order_id = ?", dto.ID).Find(&items).Error)
	require.Len(t, items, len(lines))
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	assert.Equal(t, sum.InexactFloat64(), dto.TotalAmount)
	assert.Equal(t, 38.13, dto.TotalAmount)
}

// numericColumns rounds money on write the way Postgres numeric(12,2) columns do.
type numericColumns struct {
	Repository
}

func (r numericColumns) WithTx(tx *gorm.DB) Repository {
	return numericColumns{Repository: r.Repository.WithTx(tx)}
}

func (r numericColumns) CreateOrderItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	item.Price = item.Price.Round(2)
	return r.Repository.CreateOrderItem(ctx, item)
}

func (r numericColumns) UpdateOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	return r.Repository.UpdateOrderTotal(ctx, orderID, total.Round(2))
}

func TestCreateOrderRoundsSubCentPrices(t *testing.T) {
	f := newFixture(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	svc, err := NewService(numericColumns{Repository: NewRepository(f.conn)}, db.NewWithConn(f.conn), logg, nil, func() time.Time { return fixedNow })
	require.NoError(t, err)

	dto, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: f.customer.ID,
		Items: []OrderItemInput{
			{ProductID: f.rice.ID, Quantity: 1, Price: price("0.005")},
			{ProductID: f.rice.ID, Quantity: 1, Price: price("0.005")},
			{ProductID: f.tomato.ID, Quantity: 1, Price: price("0.005")},
		},
	})
	require.NoError(t, err)

	var items []models.OrderItem
	require.NoError(t, f.conn.Where("order_id = ?", dto.ID).Find(&items).Error)
	require.Len(t, items, 3)
	sum := decimal.Zero
	for _, item := range items {
		assert.True(t, item.Price.Equal(decimal.RequireFromString("0.01")), item.Price.String())
		sum = sum.Add(item.LineTotal())
	}
	assert.Equal(t, 0.03, dto.TotalAmount)
	assert.Equal(t, sum.InexactFloat64(), dto.TotalAmount)
	for _, item := range dto.Items {
		assert.Equal(t, 0.01, item.Price)
	}
}

func TestCreateOrderRoundsHalfAwayFromZero(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: f.customer.ID,
		Items: []OrderItemInput{
			{ProductID: f.rice.ID, Quantity: 4, Price: price("1.234")},
			{ProductID: f.tomato.ID, Quantity: 2, Price: price("2.675")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.23, dto.Items[0].Price)
	assert.Equal(t, 2.68, dto.Items[1].Price)
	assert.Equal(t, 10.28, dto.TotalAmount)
}

func TestCreateOrderFailuresLeaveNothingBehind(t *testing.T) {
	cases := []struct {
		name    string
		input   func(f *fixture) CreateOrderInput
		code    pkgerrors.Code
		message func(f *fixture) string
	}{
		{
			name: "unknown customer",
			input: func(f *fixture) CreateOrderInput {
				return CreateOrderInput{CustomerID: 999, Items: []OrderItemInput{{ProductID: f.rice.ID, Quantity: 1, Price: price("1")}}}
			},
			code:    pkgerrors.CodeNotFound,
			message: func(*fixture) string { return "customer not found" },
		},
		{
			name: "unknown product after a valid item",
			input: func(f *fixture) CreateOrderInput {
				return CreateOrderInput{CustomerID: f.customer.ID, Items: []OrderItemInput{
					{ProductID: f.rice.ID, Quantity: 1, Price: price("10")},
					{ProductID: 4242, Quantity: 1, Price: price("1")},
				}}
			},
			code:    pkgerrors.CodeNotFound,
			message: func(*fixture) string { return "product not found: 4242" },
		},
		{
			name: "missing price on second item",
			input: func(f *fixture) CreateOrderInput {
				return CreateOrderInput{CustomerID: f.customer.ID, Items: []OrderItemInput{
					{ProductID: f.rice.ID, Quantity: 2, Price: price("10")},
					{ProductID: f.tomato.ID, Quantity: 3},
				}}
			},
			code: pkgerrors.CodeValidation,
			message: func(f *fixture) string {
				return fmt.Sprintf("price must be provided for product: %d", f.tomato.ID)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CreateOrder(context.Background(), tc.input(f))
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, tc.code))
			assert.Equal(t, tc.message(f), pkgerrors.As(err).Message())

			orders, items := f.counts(t)
			assert.Zero(t, orders)
			assert.Zero(t, items)

			assert.Equal(t, 1.0, counterValue(t, f.reg, "orders_failed_total", "code", string(tc.code)))
			assert.Zero(t, counterValue(t, f.reg, "orders_created_total", "", ""))
		})
	}
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: f.tomato.ID, Quantity: 4, Price: price("5")}},
	})
	require.NoError(t, err)

	got, err := f.svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.svc.GetOrder(ctx, 999)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "order not found", pkgerrors.As(err).Message())
}

func TestListOrdersByCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := models.User{Name: "Retailer Bob", Role: "Retailer"}
	require.NoError(t, f.conn.Create(&other).Error)

	for _, customerID := range []int64{f.customer.ID, other.ID, f.customer.ID} {
		_, err := f.svc.CreateOrder(ctx, CreateOrderInput{
			CustomerID: customerID,
			Items:      []OrderItemInput{{ProductID: f.rice.ID, Quantity: 1, Price: price("10")}},
		})
		require.NoError(t, err)
	}

	all, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.svc.ListOrdersByCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, order := range mine {
		assert.Equal(t, "Consumer Alice", order.CustomerName)
		assert.Len(t, order.Items, 1)
	}

	none, err := f.svc.ListOrdersByCustomer(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateOrderStatusAcceptsAnyValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: f.rice.ID, Quantity: 1, Price: price("10")}},
	})
	require.NoError(t, err)

	for _, status := range []string{"DELIVERED", "CREATED", "on-hold"} {
		updated, err := f.svc.UpdateOrderStatus(ctx, created.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, 10.0, updated.TotalAmount)
	}

	_, err = f.svc.UpdateOrderStatus(ctx, 999, "SHIPPED")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.UpdateOrderStatus(ctx, created.ID, "  ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{
		CustomerID: f.customer.ID,
		Items: []OrderItemInput{
			{ProductID: f.rice.ID, Quantity: 1, Price: price("10")},
			{ProductID: f.tomato.ID, Quantity: 1, Price: price("5")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(ctx, created.ID))
	orders, items := f.counts(t)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	var products int64
	require.NoError(t, f.conn.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(2), products)

	require.NoError(t, f.svc.DeleteOrder(ctx, created.ID))
	require.NoError(t, f.svc.DeleteOrder(ctx, 31337))
}
