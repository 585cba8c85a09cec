package controllers

import (
	"net/http"

	"github.com/angelmondragon/farmtofork-backend/api/responses"
	"github.com/angelmondragon/farmtofork-backend/api/validators"
	"github.com/angelmondragon/farmtofork-backend/internal/products"
	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/angelmondragon/farmtofork-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	CropType     string   `json:"cropType"`
	Category     string   `json:"category"`
	QuantityKg   *float64 `json:"quantityKg" validate:"omitempty,gte=0"`
	QualityGrade string   `json:"qualityGrade"`
	HarvestDate  *string  `json:"harvestDate"`
	Location     string   `json:"location"`
	ImageURL     string   `json:"imageUrl"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Unit         string   `json:"unit"`
	AIScore      *float64 `json:"aiScore" validate:"omitempty,gte=0,lte=100"`
	AIVerdict    *string  `json:"aiVerdict"`
	Status       string   `json:"status"`
}

func (p createProductRequest) toCreateInput() (products.CreateProductInput, error) {
	harvest, err := types.ParseDate(p.HarvestDate)
	if err != nil {
		return products.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "harvestDate must be YYYY-MM-DD").
			WithDetails(map[string]any{"field": "harvestDate"})
	}

	input := products.CreateProductInput{
		Name:         p.Name,
		CropType:     p.CropType,
		Category:     p.Category,
		QuantityKg:   p.QuantityKg,
		QualityGrade: p.QualityGrade,
		HarvestDate:  harvest,
		Location:     p.Location,
		ImageURL:     p.ImageURL,
		Description:  p.Description,
		Unit:         p.Unit,
		AIScore:      p.AIScore,
		AIVerdict:    p.AIVerdict,
	}
	if p.Price != nil {
		input.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*p.Price))
	}
	if p.Status != "" {
		status, err := enums.ParseProductStatus(p.Status)
		if err != nil {
			return products.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product status").
				WithDetails(map[string]any{"field": "status"})
		}
		input.Status = status
	}
	return input, nil
}

func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if product == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeNotFound, "product not found: %d", id))
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductList returns every product, or those matching ?cropType=.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		list, err := svc.ListProducts(r.Context(), products.ListFilter{CropType: validators.QueryString(r, "cropType")})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
