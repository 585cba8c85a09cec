package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
)

// Product is a harvested crop listing. Category, Description, Price and Unit are legacy columns
// kept for older clients; Price is informational only and never used to price orders.
type Product struct {
	ID           int64               `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string              `gorm:"column:name;not null"`
	CropType     string              `gorm:"column:crop_type;index"`
	QuantityKg   *float64            `gorm:"column:quantity_kg"`
	QualityGrade string              `gorm:"column:quality_grade"`
	HarvestDate  *time.Time          `gorm:"column:harvest_date;type:date"`
	Location     string              `gorm:"column:location"`
	ImageURL     string              `gorm:"column:image_url;type:text"`
	Category     string              `gorm:"column:category"`
	Description  string              `gorm:"column:description;type:text"`
	Price        decimal.NullDecimal `gorm:"column:price;type:numeric(12,2)"`
	Unit         string              `gorm:"column:unit"`
	AIScore      *float64            `gorm:"column:ai_score"`
	AIVerdict    *string             `gorm:"column:ai_verdict"`
	Status       enums.ProductStatus `gorm:"column:status;not null;default:'PENDING'"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
