package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimals kept by the numeric(12,2) money columns.
const MoneyScale int32 = 2

// Order is the header of an order aggregate. TotalAmount is always derived from Items.
type Order struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  int64           `gorm:"column:customer_id;not null;index"`
	Customer    *User           `gorm:"foreignKey:CustomerID"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	Status      string          `gorm:"column:status;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the unit price supplied when the order was placed.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  int64           `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
