package inventory

import (
	"context"
	"fmt"

	"github.com/angelmondragon/farmtofork-backend/pkg/db"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
)

const (
	msgProductOrOwnerNotFound = "product or owner not found"
	msgInventoryNotFound      = "inventory not found"
)

// Service manages inventory lots.
type Service interface {
	AddInventory(ctx context.Context, input AddInventoryInput) (*InventoryDTO, error)
	UpdateInventory(ctx context.Context, id int64, input UpdateInventoryInput) (*InventoryDTO, error)
	ListInventory(ctx context.Context) ([]InventoryDTO, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]InventoryDTO, error)
	DeleteInventory(ctx context.Context, id int64) error
}

type inventoryStore interface {
	Create(ctx context.Context, inv *models.Inventory) error
	Save(ctx context.Context, inv *models.Inventory) error
	FindByID(ctx context.Context, id int64) (*models.Inventory, error)
	List(ctx context.Context) ([]models.Inventory, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Inventory, error)
	Delete(ctx context.Context, id int64) error
	FindProduct(ctx context.Context, id int64) (*models.Product, error)
	FindOwner(ctx context.Context, id int64) (*models.User, error)
}

type service struct {
	repo inventoryStore
	logg *logger.Logger
}

func NewService(repo inventoryStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) AddInventory(ctx context.Context, input AddInventoryInput) (*InventoryDTO, error) {
	product, err := s.repo.FindProduct(ctx, input.ProductID)
	if err != nil && !db.IsRecordNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	owner, ownerErr := s.repo.FindOwner(ctx, input.OwnerID)
	if ownerErr != nil && !db.IsRecordNotFound(ownerErr) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ownerErr, "lookup owner")
	}
	if product == nil || owner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgProductOrOwnerNotFound)
	}

	inv := &models.Inventory{
		ProductID: product.ID,
		Product:   product,
		OwnerID:   owner.ID,
		Owner:     owner,
		Quantity:  input.Quantity,
		Stage:     stageOrDefault(input.Stage),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory")
	}
	return FromModel(inv), nil
}

func (s *service) UpdateInventory(ctx context.Context, id int64, input UpdateInventoryInput) (*InventoryDTO, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgInventoryNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}

	if input.ProductID != nil {
		product, err := s.repo.FindProduct(ctx, *input.ProductID)
		switch {
		case err == nil:
			inv.ProductID = product.ID
			inv.Product = product
		case db.IsRecordNotFound(err):
			logCtx := s.logg.WithFields(ctx, map[string]any{"inventory_id": id, "product_id": *input.ProductID})
			s.logg.Warn(logCtx, "inventory.update_product_unresolved")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
		}
	}
	if input.OwnerID != nil {
		owner, err := s.repo.FindOwner(ctx, *input.OwnerID)
		switch {
		case err == nil:
			inv.OwnerID = owner.ID
			inv.Owner = owner
		case db.IsRecordNotFound(err):
			logCtx := s.logg.WithFields(ctx, map[string]any{"inventory_id": id, "owner_id": *input.OwnerID})
			s.logg.Warn(logCtx, "inventory.update_owner_unresolved")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup owner")
		}
	}
	if input.Quantity != nil {
		inv.Quantity = *input.Quantity
	}
	if input.Stage != nil {
		inv.Stage = *input.Stage
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory")
	}
	return FromModel(inv), nil
}

func (s *service) ListInventory(ctx context.Context) ([]InventoryDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	return FromModels(list), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]InventoryDTO, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory by owner")
	}
	return FromModels(list), nil
}

func (s *service) DeleteInventory(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory")
	}
	return nil
}
