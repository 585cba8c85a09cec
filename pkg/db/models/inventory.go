package models

import "time"

// Inventory is a lot: a quantity of one product held by one owner at a supply-chain stage.
type Inventory struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;index"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	OwnerID   int64     `gorm:"column:owner_id;not null;index"`
	Owner     *User     `gorm:"foreignKey:OwnerID"`
	Quantity  int64     `gorm:"column:quantity;not null;default:0"`
	Stage     string    `gorm:"column:stage"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inventory) TableName() string { return "inventory" }
