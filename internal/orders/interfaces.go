package orders

import (
	"context"

	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the order aggregate and the rows it references.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error)
	UpdateOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	FindOrder(ctx context.Context, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	FindCustomer(ctx context.Context, customerID int64) (*models.User, error)
	FindProduct(ctx context.Context, productID int64) (*models.Product, error)
}
