package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/farmtofork-backend/pkg/aiscore"
	"github.com/angelmondragon/farmtofork-backend/pkg/db"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
)

const (
	goodQualityThreshold = 80.0

	VerdictGoodQuality    = "Good Quality"
	VerdictAverageQuality = "Average Quality"
)

// Service exposes product creation and reads.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	// GetProduct returns nil without an error when the product does not exist.
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
}

type productStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByCropType(ctx context.Context, cropType string) ([]models.Product, error)
}

type imageScorer interface {
	ScoreImage(ctx context.Context, image string) (*aiscore.Result, bool)
}

type service struct {
	repo   productStore
	scorer imageScorer
}

// NewService constructs a product service instance.
func NewService(repo productStore, scorer imageScorer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("image scorer required")
	}
	return &service{repo: repo, scorer: scorer}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	product := input.toModel()
	s.applyQuality(ctx, product)

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(created), nil
}

// applyQuality fills the score and verdict. Without a submitted score the image is sent
// to the scorer; a submitted score with no verdict gets a threshold verdict. A submitted
// verdict is never replaced.
func (s *service) applyQuality(ctx context.Context, product *models.Product) {
	if product.AIScore == nil {
		result, ok := s.scorer.ScoreImage(ctx, product.ImageURL)
		if !ok {
			return
		}
		product.AIScore = result.AIScore
		if product.AIVerdict == nil {
			product.AIVerdict = result.QualityLabel
		}
		return
	}

	if product.AIVerdict == nil {
		verdict := VerdictForScore(*product.AIScore)
		product.AIVerdict = &verdict
	}
}

// VerdictForScore maps a 0-100 score to its quality label.
func VerdictForScore(score float64) string {
	if score >= goodQualityThreshold {
		return VerdictGoodQuality
	}
	return VerdictAverageQuality
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get product")
	}
	return FromModel(product), nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	var (
		list []models.Product
		err  error
	)
	if cropType := strings.TrimSpace(filter.CropType); cropType != "" {
		list, err = s.repo.ListByCropType(ctx, cropType)
	} else {
		list, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return FromModels(list), nil
}
