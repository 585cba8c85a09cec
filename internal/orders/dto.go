package orders

import (
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/angelmondragon/farmtofork-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// CreateOrderInput is a customer plus the line items to place.
type CreateOrderInput struct {
	CustomerID int64
	Items      []OrderItemInput
}

// OrderItemInput carries the unit price snapshot. A nil Price is rejected.
type OrderItemInput struct {
	ProductID int64
	Quantity  int64
	Price     *decimal.Decimal
}

type OrderItemDTO struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderDTO flattens the order header, its customer and its items.
type OrderDTO struct {
	ID           int64          `json:"id"`
	CustomerID   int64          `json:"customerId"`
	CustomerName string         `json:"customerName"`
	TotalAmount  float64        `json:"totalAmount"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"createdAt"`
	Items        []OrderItemDTO `json:"items"`
}

func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount.InexactFloat64(),
		Status:      order.Status,
		CreatedAt:   types.FormatDateTime(order.CreatedAt),
		Items:       make([]OrderItemDTO, 0, len(order.Items)),
	}
	if order.Customer != nil {
		dto.CustomerName = order.Customer.Name
	}
	for _, item := range order.Items {
		view := OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
		}
		if item.Product != nil {
			view.ProductName = item.Product.Name
		}
		dto.Items = append(dto.Items, view)
	}
	return dto
}

func FromModels(list []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
