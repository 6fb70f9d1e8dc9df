package repository

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
	"gorm.io/gorm"
)

// FindBrand loads an active brand with its active lines and categories.
// Returns gorm.ErrRecordNotFound when the brand is absent or deleted.
func FindBrand(id uint) (*model.Brand, error) {
	var brand model.Brand
	err := database.GetDB().
		Scopes(Active).
		Preload("Lines", activeChildren).
		Preload("Categories", activeChildren).
		First(&brand, id).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListBrands returns all active brands
func ListBrands() ([]model.Brand, error) {
	var brands []model.Brand
	err := database.GetDB().
		Scopes(Active).
		Preload("Lines", activeChildren).
		Preload("Categories", activeChildren).
		Order("name").
		Find(&brands).Error
	return brands, err
}

// BrandNameExists reports whether an active brand already carries the
// exact name
func BrandNameExists(name string) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Brand{}).
		Scopes(Active).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// CreateBrand persists a new brand together with any attached lines and
// categories in one transaction
func CreateBrand(brand *model.Brand) error {
	return database.GetDB().Create(brand).Error
}

// SaveBrand persists brand mutations, cascading to owned collections
func SaveBrand(brand *model.Brand) error {
	return database.GetDB().
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(brand).Error
}
