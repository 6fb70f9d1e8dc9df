package repository

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
	"gorm.io/gorm"
)

// ProductFilters narrows product listings
type ProductFilters struct {
	BrandID    *uint
	CategoryID *uint
	LineID     *uint
	Name       string
}

// FindProduct loads an active product with its full image collection.
// Soft-deleted images are kept so their positions stay reserved; read
// projections filter them in the domain model.
func FindProduct(id uint) (*model.Product, error) {
	var product model.Product
	err := database.GetDB().
		Scopes(Active).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns active products matching the filters
func ListProducts(filters ProductFilters) ([]model.Product, error) {
	query := database.GetDB().
		Scopes(Active).
		Preload("Images", activeChildren)

	if filters.BrandID != nil {
		query = query.Where("brand_id = ?", *filters.BrandID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.LineID != nil {
		query = query.Where("line_id = ?", *filters.LineID)
	}
	if filters.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Name+"%")
	}

	var products []model.Product
	err := query.Order("name").Find(&products).Error
	return products, err
}

// ProductNameExists reports whether an active product already carries
// the exact name
func ProductNameExists(name string) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Product{}).
		Scopes(Active).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// CreateProduct persists a new product with its image collection in one
// transaction
func CreateProduct(product *model.Product) error {
	return database.GetDB().Create(product).Error
}

// SaveProduct persists product mutations, cascading image changes
func SaveProduct(product *model.Product) error {
	return database.GetDB().
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(product).Error
}
