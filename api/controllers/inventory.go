package controllers

import (
	"net/http"

	"github.com/angelmondragon/farmtofork-backend/api/responses"
	"github.com/angelmondragon/farmtofork-backend/api/validators"
	"github.com/angelmondragon/farmtofork-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
)

type addInventoryRequest struct {
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	OwnerID   int64   `json:"ownerId" validate:"required,gt=0"`
	Quantity  int64   `json:"quantity" validate:"gte=0"`
	Stage     *string `json:"stage"`
}

// updateInventoryRequest mirrors the add payload with every field optional.
type updateInventoryRequest struct {
	ProductID *int64  `json:"productId"`
	OwnerID   *int64  `json:"ownerId"`
	Quantity  *int64  `json:"quantity" validate:"omitempty,gte=0"`
	Stage     *string `json:"stage"`
}

func InventoryAdd(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload addInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lot, err := svc.AddInventory(r.Context(), inventory.AddInventoryInput{
			ProductID: payload.ProductID,
			OwnerID:   payload.OwnerID,
			Quantity:  payload.Quantity,
			Stage:     payload.Stage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lot)
	}
}

func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lot, err := svc.UpdateInventory(r.Context(), id, inventory.UpdateInventoryInput{
			ProductID: payload.ProductID,
			OwnerID:   payload.OwnerID,
			Quantity:  payload.Quantity,
			Stage:     payload.Stage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lot)
	}
}

func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		list, err := svc.ListInventory(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func InventoryByOwner(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		ownerID, err := validators.ParsePathID(r, "ownerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// InventoryDelete answers 204 whether or not the lot existed.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteInventory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
