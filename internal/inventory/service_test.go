package inventory

import (
	"bytes"
	"context"
	"testing"

	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc    Service
	repo   *Repository
	db     *gorm.DB
	logs   *bytes.Buffer
	farmer models.User
	retail models.User
	rice   models.Product
	tomato models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := openTestDB(t)
	logs := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: logs})

	repo := NewRepository(conn)
	svc, err := NewService(repo, logg)
	require.NoError(t, err)

	f := &fixture{svc: svc, repo: repo, db: conn, logs: logs}
	f.farmer = models.User{Name: "Farmer John", Email: "farmer@example.com", Role: "Farmer"}
	f.retail = models.User{Name: "Retailer Bob", Email: "retailer@example.com", Role: "Retailer"}
	require.NoError(t, conn.Create(&f.farmer).Error)
	require.NoError(t, conn.Create(&f.retail).Error)
	f.rice = models.Product{Name: "Rice", CropType: "Grains"}
	f.tomato = models.Product{Name: "Tomato", CropType: "Vegetables"}
	require.NoError(t, conn.Create(&f.rice).Error)
	require.NoError(t, conn.Create(&f.tomato).Error)
	return f
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string  { return &v }

func countInventory(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(&models.Inventory{}).Count(&n).Error)
	return n
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, logger.New(logger.Options{}))
	require.Error(t, err)
	_, err = NewService(NewRepository(openTestDB(t)), nil)
	require.Error(t, err)
}

func TestAddInventoryDefaultsStage(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.AddInventory(context.Background(), AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 40})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "harvested", dto.Stage)
	assert.Equal(t, int64(40), dto.Quantity)
	require.NotNil(t, dto.Product)
	assert.Equal(t, "Rice", dto.Product.Name)
	require.NotNil(t, dto.Owner)
	assert.Equal(t, "Farmer John", dto.Owner.Name)
}

func TestAddInventoryKeepsSuppliedStage(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.AddInventory(context.Background(), AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 1, Stage: strPtr("at_distributor")})
	require.NoError(t, err)
	assert.Equal(t, "at_distributor", dto.Stage)
}

func TestAddInventoryKeepsBlankStage(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.AddInventory(context.Background(), AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 1, Stage: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", dto.Stage)

	var stored models.Inventory
	require.NoError(t, f.db.First(&stored, dto.ID).Error)
	assert.Equal(t, "", stored.Stage)
}

func TestAddInventoryRejectsUnknownReferences(t *testing.T) {
	cases := []struct {
		name    string
		product func(f *fixture) int64
		owner   func(f *fixture) int64
	}{
		{name: "unknown product", product: func(*fixture) int64 { return 999 }, owner: func(f *fixture) int64 { return f.farmer.ID }},
		{name: "unknown owner", product: func(f *fixture) int64 { return f.rice.ID }, owner: func(*fixture) int64 { return 999 }},
		{name: "both unknown", product: func(*fixture) int64 { return 998 }, owner: func(*fixture) int64 { return 999 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.AddInventory(context.Background(), AddInventoryInput{ProductID: tc.product(f), OwnerID: tc.owner(f), Quantity: 5})
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
			assert.Equal(t, "product or owner not found", pkgerrors.As(err).Message())
			assert.Zero(t, countInventory(t, f.db))
		})
	}
}

func TestUpdateInventoryAppliesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.AddInventory(ctx, AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 40})
	require.NoError(t, err)

	updated, err := f.svc.UpdateInventory(ctx, created.ID, UpdateInventoryInput{Quantity: int64Ptr(25)})
	require.NoError(t, err)
	assert.Equal(t, int64(25), updated.Quantity)
	assert.Equal(t, "harvested", updated.Stage)
	assert.Equal(t, f.rice.ID, updated.Product.ID)
	assert.Equal(t, f.farmer.ID, updated.Owner.ID)

	updated, err = f.svc.UpdateInventory(ctx, created.ID, UpdateInventoryInput{Stage: strPtr("at_retailer"), OwnerID: int64Ptr(f.retail.ID)})
	require.NoError(t, err)
	assert.Equal(t, int64(25), updated.Quantity)
	assert.Equal(t, "at_retailer", updated.Stage)
	assert.Equal(t, "Retailer Bob", updated.Owner.Name)

	stored, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), stored.Quantity)
	assert.Equal(t, "at_retailer", stored.Stage)
	assert.Equal(t, f.retail.ID, stored.OwnerID)
	assert.Equal(t, f.rice.ID, stored.ProductID)
}

func TestUpdateInventoryIgnoresUnresolvedReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.AddInventory(ctx, AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 10})
	require.NoError(t, err)

	updated, err := f.svc.UpdateInventory(ctx, created.ID, UpdateInventoryInput{
		ProductID: int64Ptr(999),
		OwnerID:   int64Ptr(998),
		Quantity:  int64Ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, f.rice.ID, updated.Product.ID)
	assert.Equal(t, f.farmer.ID, updated.Owner.ID)
	assert.Equal(t, int64(3), updated.Quantity)
	assert.Contains(t, f.logs.String(), "inventory.update_product_unresolved")
	assert.Contains(t, f.logs.String(), "inventory.update_owner_unresolved")
}

func TestUpdateInventoryMovesProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.AddInventory(ctx, AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 10})
	require.NoError(t, err)

	updated, err := f.svc.UpdateInventory(ctx, created.ID, UpdateInventoryInput{ProductID: int64Ptr(f.tomato.ID)})
	require.NoError(t, err)
	assert.Equal(t, "Tomato", updated.Product.Name)

	var product models.Product
	require.NoError(t, f.db.First(&product, f.rice.ID).Error)
	assert.Equal(t, "Rice", product.Name)
}

func TestUpdateInventoryMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateInventory(context.Background(), 404, UpdateInventoryInput{Quantity: int64Ptr(1)})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "inventory not found", pkgerrors.As(err).Message())
}

func TestListInventoryByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, in := range []AddInventoryInput{
		{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 1},
		{ProductID: f.tomato.ID, OwnerID: f.retail.ID, Quantity: 2},
		{ProductID: f.tomato.ID, OwnerID: f.farmer.ID, Quantity: 3},
	} {
		_, err := f.svc.AddInventory(ctx, in)
		require.NoError(t, err)
	}

	all, err := f.svc.ListInventory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.svc.ListByOwner(ctx, f.farmer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].Quantity)
	assert.Equal(t, "Tomato", mine[1].Product.Name)

	none, err := f.svc.ListByOwner(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteInventoryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.AddInventory(ctx, AddInventoryInput{ProductID: f.rice.ID, OwnerID: f.farmer.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteInventory(ctx, created.ID))
	assert.Zero(t, countInventory(t, f.db))
	require.NoError(t, f.svc.DeleteInventory(ctx, created.ID))
	require.NoError(t, f.svc.DeleteInventory(ctx, 12345))
}
