package model

import (
	"strings"

	"github.com/gosimple/slug"
)

// Brand is the top-level catalog namespace. It exclusively owns its
// lines and categories (direct 1:N on both sides).
type Brand struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Name        string     `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug        string     `json:"slug" gorm:"type:varchar(60)"`
	Description string     `json:"description" gorm:"type:varchar(100)"`
	LogoURL     string     `json:"logo_url" gorm:"type:varchar(500)"`
	LogoAssetID string     `json:"logo_asset_id" gorm:"type:varchar(255)"`
	Lines       []Line     `json:"lines,omitempty" gorm:"foreignKey:BrandID"`
	Categories  []Category `json:"categories,omitempty" gorm:"foreignKey:BrandID"`
	Audit
}

// NewBrand builds a brand with its logo asset reference
func NewBrand(name, description, logoURL, logoAssetID string) *Brand {
	return &Brand{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		LogoURL:     logoURL,
		LogoAssetID: logoAssetID,
	}
}

// AddLine attaches a line to the brand and back-links it. Adding a line
// that is already attached, matched by id or case-insensitive name, is a
// no-op.
func (b *Brand) AddLine(line *Line) {
	if b.HasLine(line) {
		return
	}
	line.BrandID = b.ID
	b.Lines = append(b.Lines, *line)
}

// HasLine reports whether the brand already owns the line, matched by id
// or case-insensitive name
func (b *Brand) HasLine(line *Line) bool {
	for _, l := range b.Lines {
		if l.ID != 0 && l.ID == line.ID {
			return true
		}
		if strings.EqualFold(l.Name, line.Name) {
			return true
		}
	}
	return false
}

// AddCategory attaches a category to the brand and back-links it.
// Re-attaching an already-linked category is a no-op.
func (b *Brand) AddCategory(category *Category) {
	if b.HasCategory(category) {
		return
	}
	id := b.ID
	category.BrandID = &id
	b.Categories = append(b.Categories, *category)
}

// HasCategory reports whether the brand already owns the category,
// matched by id or case-insensitive name
func (b *Brand) HasCategory(category *Category) bool {
	for _, c := range b.Categories {
		if c.ID != 0 && c.ID == category.ID {
			return true
		}
		if strings.EqualFold(c.Name, category.Name) {
			return true
		}
	}
	return false
}

// Rename changes the brand name and regenerates the slug
func (b *Brand) Rename(name string) {
	b.Name = name
	b.Slug = slug.Make(name)
}

// ChangeDescription replaces the brand description
func (b *Brand) ChangeDescription(description string) {
	b.Description = description
}

// ChangeLogo replaces the logo asset reference
func (b *Brand) ChangeLogo(logoURL, logoAssetID string) {
	b.LogoURL = logoURL
	b.LogoAssetID = logoAssetID
}
