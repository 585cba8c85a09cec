package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/farmtofork-backend/pkg/db"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/angelmondragon/farmtofork-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order aggregate operations.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, orderID int64) (*OrderDTO, error)
	ListOrders(ctx context.Context) ([]OrderDTO, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]OrderDTO, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

type service struct {
	repo    Repository
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// NewService builds an order service. A nil metrics value disables counting.
func NewService(repo Repository, tx txRunner, logg *logger.Logger, orderMetrics *metrics.OrderMetrics, clock func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{
		repo:    repo,
		tx:      tx,
		logg:    logg,
		metrics: orderMetrics,
		now:     clock,
	}, nil
}

// CreateOrder persists the header, every item and the derived total in one transaction.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.FindCustomer(ctx, input.CustomerID)
		if err != nil {
			if db.IsRecordNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
		}

		order, err := repo.CreateOrder(ctx, &models.Order{
			CustomerID:  customer.ID,
			TotalAmount: decimal.Zero,
			Status:      enums.OrderStatusCreated,
			CreatedAt:   s.now().UTC(),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		total := decimal.Zero
		for _, line := range input.Items {
			product, err := repo.FindProduct(ctx, line.ProductID)
			if err != nil {
				if db.IsRecordNotFound(err) {
					return pkgerrors.Newf(pkgerrors.CodeNotFound, "product not found: %d", line.ProductID)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
			}
			if line.Price == nil {
				return pkgerrors.Newf(pkgerrors.CodeValidation, "price must be provided for product: %d", line.ProductID)
			}

			item, err := repo.CreateOrderItem(ctx, &models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     line.Price.Round(models.MoneyScale),
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
			}
			total = total.Add(item.LineTotal())
		}

		if err := repo.UpdateOrderTotal(ctx, order.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order total")
		}

		created, err = repo.FindOrder(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		s.metrics.IncFailed(string(code))
		return nil, err
	}

	s.metrics.IncCreated()
	logCtx := s.logg.WithOrderID(ctx, created.ID)
	logCtx = s.logg.WithFields(logCtx, map[string]any{
		"customer_id":  created.CustomerID,
		"item_count":   len(created.Items),
		"total_amount": created.TotalAmount.StringFixed(2),
	})
	s.logg.Info(logCtx, "order.created")
	return FromModel(created), nil
}

func (s *service) GetOrder(ctx context.Context, orderID int64) (*OrderDTO, error) {
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, mapOrderLookupErr(err)
	}
	return FromModel(order), nil
}

func (s *service) ListOrders(ctx context.Context) ([]OrderDTO, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return FromModels(list), nil
}

func (s *service) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]OrderDTO, error) {
	list, err := s.repo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer orders")
	}
	return FromModels(list), nil
}

// UpdateOrderStatus accepts any status string; there is no transition graph.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*OrderDTO, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindOrder(ctx, orderID); err != nil {
			return mapOrderLookupErr(err)
		}
		if err := repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// DeleteOrder removes the order with its items. Unknown ids succeed without effect.
func (s *service) DeleteOrder(ctx context.Context, orderID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteOrder(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

func mapOrderLookupErr(err error) error {
	if db.IsRecordNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
}
