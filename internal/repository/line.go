package repository

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
)

// FindLine loads an active line by id
func FindLine(id uint) (*model.Line, error) {
	var line model.Line
	err := database.GetDB().Scopes(Active).First(&line, id).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// ListLines returns active lines, optionally narrowed to one brand
func ListLines(brandID *uint) ([]model.Line, error) {
	query := database.GetDB().Scopes(Active)
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}

	var lines []model.Line
	err := query.Order("name").Find(&lines).Error
	return lines, err
}

// LineNameExistsInBrand reports whether the brand already owns an
// active line with the name, case-insensitive
func LineNameExistsInBrand(name string, brandID uint) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Line{}).
		Scopes(Active).
		Where("brand_id = ? AND LOWER(name) = LOWER(?)", brandID, name).
		Count(&count).Error
	return count > 0, err
}

// CreateLine persists a new line
func CreateLine(line *model.Line) error {
	return database.GetDB().Create(line).Error
}

// SaveLine persists line mutations
func SaveLine(line *model.Line) error {
	return database.GetDB().Save(line).Error
}
