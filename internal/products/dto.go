package products

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
	"github.com/angelmondragon/farmtofork-backend/pkg/types"
)

// ProductDTO is the product view. Category mirrors CropType for older clients.
type ProductDTO struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	CropType     string              `json:"cropType"`
	QuantityKg   *float64            `json:"quantityKg"`
	QualityGrade string              `json:"qualityGrade"`
	HarvestDate  *string             `json:"harvestDate"`
	Location     string              `json:"location"`
	Status       enums.ProductStatus `json:"status"`
	ImageURL     string              `json:"imageUrl"`
	AIScore      *float64            `json:"aiScore"`
	AIVerdict    *string             `json:"aiVerdict"`
	Price        *float64            `json:"price"`
	Description  string              `json:"description,omitempty"`
	Unit         string              `json:"unit,omitempty"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name         string
	CropType     string
	Category     string
	QuantityKg   *float64
	QualityGrade string
	HarvestDate  *time.Time
	Location     string
	ImageURL     string
	Description  string
	Price        decimal.NullDecimal
	Unit         string
	AIScore      *float64
	AIVerdict    *string
	Status       enums.ProductStatus
}

// ListFilter narrows product listings. Empty fields match everything.
type ListFilter struct {
	CropType string
}

func (in CreateProductInput) toModel() *models.Product {
	cropType := strings.TrimSpace(in.CropType)
	category := strings.TrimSpace(in.Category)
	if cropType == "" {
		cropType = category
	}
	if category == "" {
		category = cropType
	}
	status := in.Status
	if status == "" {
		status = enums.ProductStatusPending
	}

	return &models.Product{
		Name:         strings.TrimSpace(in.Name),
		CropType:     cropType,
		Category:     category,
		QuantityKg:   in.QuantityKg,
		QualityGrade: strings.TrimSpace(in.QualityGrade),
		HarvestDate:  in.HarvestDate,
		Location:     strings.TrimSpace(in.Location),
		ImageURL:     in.ImageURL,
		Description:  in.Description,
		Price:        in.Price,
		Unit:         strings.TrimSpace(in.Unit),
		AIScore:      in.AIScore,
		AIVerdict:    in.AIVerdict,
		Status:       status,
	}
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.CropType,
		CropType:     p.CropType,
		QuantityKg:   p.QuantityKg,
		QualityGrade: p.QualityGrade,
		HarvestDate:  types.FormatDate(p.HarvestDate),
		Location:     p.Location,
		Status:       p.Status,
		ImageURL:     p.ImageURL,
		AIScore:      p.AIScore,
		AIVerdict:    p.AIVerdict,
		Description:  p.Description,
		Unit:         p.Unit,
	}
	if p.Price.Valid {
		price := p.Price.Decimal.InexactFloat64()
		dto.Price = &price
	}
	return dto
}

func FromModels(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
