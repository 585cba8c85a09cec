package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/farmtofork-backend/pkg/aiscore"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScorer struct {
	result *aiscore.Result
	ok     bool
	calls  int
	images []string
}

func (s *stubScorer) ScoreImage(_ context.Context, image string) (*aiscore.Result, bool) {
	s.calls++
	s.images = append(s.images, image)
	return s.result, s.ok
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func newTestService(t *testing.T, scorer *stubScorer) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(openTestDB(t))
	svc, err := NewService(repo, scorer)
	require.NoError(t, err)
	return svc, repo
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, &stubScorer{})
	require.Error(t, err)

	_, err = NewService(NewRepository(openTestDB(t)), nil)
	require.Error(t, err)
}

func TestCreateProductVerdictFromSubmittedScore(t *testing.T) {
	cases := []struct {
		name    string
		score   float64
		verdict string
	}{
		{name: "good", score: 85, verdict: VerdictGoodQuality},
		{name: "threshold", score: 80, verdict: VerdictGoodQuality},
		{name: "average", score: 70, verdict: VerdictAverageQuality},
		{name: "zero", score: 0, verdict: VerdictAverageQuality},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := &stubScorer{}
			svc, _ := newTestService(t, scorer)

			dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
				Name:     "Rice",
				CropType: "Grain",
				ImageURL: "data:image/png;base64,AAAA",
				AIScore:  floatPtr(tc.score),
			})
			require.NoError(t, err)
			require.NotNil(t, dto.AIVerdict)
			assert.Equal(t, tc.verdict, *dto.AIVerdict)
			assert.Equal(t, tc.score, *dto.AIScore)
			assert.Zero(t, scorer.calls)
		})
	}
}

func TestCreateProductKeepsSubmittedVerdict(t *testing.T) {
	scorer := &stubScorer{}
	svc, _ := newTestService(t, scorer)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Wheat",
		AIScore:   floatPtr(95),
		AIVerdict: strPtr("Inspected by hand"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Inspected by hand", *dto.AIVerdict)
}

func TestCreateProductUsesScorerResult(t *testing.T) {
	scorer := &stubScorer{
		ok:     true,
		result: &aiscore.Result{AIScore: floatPtr(91.5), QualityLabel: strPtr("Fresh")},
	}
	svc, repo := newTestService(t, scorer)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Tomato",
		CropType: "Vegetable",
		ImageURL: "data:image/jpeg;base64,BBBB",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, []string{"data:image/jpeg;base64,BBBB"}, scorer.images)
	assert.Equal(t, 91.5, *dto.AIScore)
	assert.Equal(t, "Fresh", *dto.AIVerdict)

	stored, err := repo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, 91.5, *stored.AIScore)
}

func TestCreateProductScorerLabelDoesNotReplaceVerdict(t *testing.T) {
	scorer := &stubScorer{
		ok:     true,
		result: &aiscore.Result{AIScore: floatPtr(40), QualityLabel: strPtr("Rotten")},
	}
	svc, _ := newTestService(t, scorer)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Potato",
		ImageURL:  "img",
		AIVerdict: strPtr("Farmer graded"),
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, *dto.AIScore)
	assert.Equal(t, "Farmer graded", *dto.AIVerdict)
}

func TestCreateProductSavesWhenScorerFails(t *testing.T) {
	scorer := &stubScorer{ok: false}
	svc, _ := newTestService(t, scorer)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Rice", ImageURL: "img"})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Nil(t, dto.AIScore)
	assert.Nil(t, dto.AIVerdict)
	assert.Equal(t, enums.ProductStatusPending, dto.Status)
}

func TestCreateProductMapsFields(t *testing.T) {
	svc, _ := newTestService(t, &stubScorer{})
	harvest := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:         "  Rice ",
		Category:     "Grain",
		QuantityKg:   floatPtr(120.5),
		QualityGrade: "A",
		HarvestDate:  &harvest,
		Location:     "Sample Farm",
		Price:        decimal.NewNullDecimal(decimal.RequireFromString("2.50")),
		AIScore:      floatPtr(88),
		Status:       enums.ProductStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rice", dto.Name)
	assert.Equal(t, "Grain", dto.CropType)
	assert.Equal(t, "Grain", dto.Category)
	assert.Equal(t, 120.5, *dto.QuantityKg)
	require.NotNil(t, dto.HarvestDate)
	assert.Equal(t, "2024-05-20", *dto.HarvestDate)
	require.NotNil(t, dto.Price)
	assert.Equal(t, 2.5, *dto.Price)
	assert.Equal(t, enums.ProductStatusApproved, dto.Status)
}

func TestGetProductMissingReturnsNil(t *testing.T) {
	svc, _ := newTestService(t, &stubScorer{})

	dto, err := svc.GetProduct(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, dto)
}

func TestListProductsFiltersByCropType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &stubScorer{})

	for _, in := range []CreateProductInput{
		{Name: "Rice", CropType: "Grain"},
		{Name: "Tomato", CropType: "Vegetable"},
		{Name: "Wheat", CropType: "Grain"},
	} {
		_, err := svc.CreateProduct(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.ListProducts(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	grains, err := svc.ListProducts(ctx, ListFilter{CropType: " Grain "})
	require.NoError(t, err)
	require.Len(t, grains, 2)
	assert.Equal(t, "Rice", grains[0].Name)
	assert.Equal(t, "Wheat", grains[1].Name)

	none, err := svc.ListProducts(ctx, ListFilter{CropType: "Fruit"})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

type failingStore struct{}

func (failingStore) Create(context.Context, *models.Product) (*models.Product, error) {
	return nil, errors.New("db down")
}
func (failingStore) FindByID(context.Context, int64) (*models.Product, error) {
	return nil, errors.New("db down")
}
func (failingStore) List(context.Context) ([]models.Product, error) {
	return nil, errors.New("db down")
}
func (failingStore) ListByCropType(context.Context, string) ([]models.Product, error) {
	return nil, errors.New("db down")
}

func TestServiceWrapsStoreErrors(t *testing.T) {
	svc, err := NewService(failingStore{}, &stubScorer{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "x", AIScore: floatPtr(1)})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	_, err = svc.GetProduct(ctx, 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	_, err = svc.ListProducts(ctx, ListFilter{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}
