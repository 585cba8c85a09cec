package inventory

import (
	"github.com/angelmondragon/farmtofork-backend/internal/products"
	"github.com/angelmondragon/farmtofork-backend/internal/users"
	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"github.com/angelmondragon/farmtofork-backend/pkg/enums"
)

// InventoryDTO is the lot view with its product and owner inlined.
type InventoryDTO struct {
	ID       int64                `json:"id"`
	Quantity int64                `json:"quantity"`
	Product  *products.ProductDTO `json:"product"`
	Owner    *users.UserDTO       `json:"owner"`
	Stage    string               `json:"stage"`
}

// AddInventoryInput creates a lot. A nil Stage defaults to "harvested"; a supplied value is kept as is.
type AddInventoryInput struct {
	ProductID int64
	OwnerID   int64
	Quantity  int64
	Stage     *string
}

// UpdateInventoryInput carries a partial update. Nil fields are left untouched.
type UpdateInventoryInput struct {
	ProductID *int64
	OwnerID   *int64
	Quantity  *int64
	Stage     *string
}

func stageOrDefault(stage *string) string {
	if stage == nil {
		return enums.InventoryStageHarvested
	}
	return *stage
}

func FromModel(inv *models.Inventory) *InventoryDTO {
	if inv == nil {
		return nil
	}
	return &InventoryDTO{
		ID:       inv.ID,
		Quantity: inv.Quantity,
		Product:  products.FromModel(inv.Product),
		Owner:    users.FromModel(inv.Owner),
		Stage:    inv.Stage,
	}
}

func FromModels(list []models.Inventory) []InventoryDTO {
	out := make([]InventoryDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
