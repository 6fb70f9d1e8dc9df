package repository

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
)

// FindCategory loads an active category by id
func FindCategory(id uint) (*model.Category, error) {
	var category model.Category
	err := database.GetDB().Scopes(Active).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns active categories, optionally narrowed to one
// brand
func ListCategories(brandID *uint) ([]model.Category, error) {
	query := database.GetDB().Scopes(Active)
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}

	var categories []model.Category
	err := query.Order("name").Find(&categories).Error
	return categories, err
}

// CategoryNameExistsInBrand reports whether the brand already owns an
// active category with the name, case-insensitive
func CategoryNameExistsInBrand(name string, brandID uint) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Category{}).
		Scopes(Active).
		Where("brand_id = ? AND LOWER(name) = LOWER(?)", brandID, name).
		Count(&count).Error
	return count > 0, err
}

// CategoryNameExistsGlobal reports whether any active category already
// carries the name, case-insensitive. Used for brand-less categories.
func CategoryNameExistsGlobal(name string) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Category{}).
		Scopes(Active).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

// CreateCategory persists a new category
func CreateCategory(category *model.Category) error {
	return database.GetDB().Create(category).Error
}

// SaveCategory persists category mutations
func SaveCategory(category *model.Category) error {
	return database.GetDB().Save(category).Error
}
