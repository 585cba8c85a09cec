package inventory

import (
	"context"

	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists inventory lots and resolves the rows they reference.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Product").Preload("Owner")
}

// Create inserts the lot without touching the referenced product or owner rows.
func (r *Repository) Create(ctx context.Context, inv *models.Inventory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error
}

// Save writes every column of an existing lot. Loaded associations are not upserted.
func (r *Repository) Save(ctx context.Context, inv *models.Inventory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.withRelations(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Inventory, error) {
	var list []models.Inventory
	if err := r.withRelations(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Inventory, error) {
	var list []models.Inventory
	if err := r.withRelations(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the lot. A missing id deletes nothing and is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Inventory{}, "id = ?", id).Error
}

func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) FindOwner(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
