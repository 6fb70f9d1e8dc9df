package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrandGeneratesSlug(t *testing.T) {
	brand := NewBrand("Cafe Central", "coffee roaster", "https://cdn/logo.png", "asset-1")

	assert.Equal(t, "Cafe Central", brand.Name)
	assert.Equal(t, "cafe-central", brand.Slug)
	assert.Equal(t, "asset-1", brand.LogoAssetID)
}

func TestBrandAddLineIsIdempotent(t *testing.T) {
	brand := NewBrand("Acme", "", "", "")
	brand.ID = 7

	brand.AddLine(NewLine("Sports", 0))
	brand.AddLine(NewLine("Sports", 0))
	brand.AddLine(NewLine("SPORTS", 0))

	require.Len(t, brand.Lines, 1)
	assert.Equal(t, uint(7), brand.Lines[0].BrandID)

	brand.AddLine(NewLine("Urban", 0))
	assert.Len(t, brand.Lines, 2)
}

func TestBrandAddLineMatchesByID(t *testing.T) {
	brand := NewBrand("Acme", "", "", "")
	line := NewLine("Sports", 0)
	line.ID = 3
	brand.AddLine(line)

	renamed := NewLine("Outdoor", 0)
	renamed.ID = 3
	brand.AddLine(renamed)

	assert.Len(t, brand.Lines, 1)
}

func TestBrandAddCategoryBackLinks(t *testing.T) {
	brand := NewBrand("Acme", "", "", "")
	brand.ID = 4

	category := NewCategory("Shoes", nil)
	brand.AddCategory(category)

	require.NotNil(t, category.BrandID)
	assert.Equal(t, uint(4), *category.BrandID)
	assert.True(t, category.BelongsTo(4))

	brand.AddCategory(NewCategory("shoes", nil))
	assert.Len(t, brand.Categories, 1)
}

func TestBrandRenameRegeneratesSlug(t *testing.T) {
	brand := NewBrand("Old Name", "", "", "")
	brand.Rename("New & Improved")

	assert.Equal(t, "New & Improved", brand.Name)
	assert.Equal(t, "new-and-improved", brand.Slug)
}

func TestBrandChangeLogo(t *testing.T) {
	brand := NewBrand("Acme", "", "https://cdn/old.png", "asset-old")

	brand.ChangeLogo("https://cdn/new.png", "asset-new")

	assert.Equal(t, "https://cdn/new.png", brand.LogoURL)
	assert.Equal(t, "asset-new", brand.LogoAssetID)
}

func TestAuditStamps(t *testing.T) {
	brand := NewBrand("Acme", "", "", "")

	brand.StampCreated("user-1")
	assert.Equal(t, "user-1", brand.CreatedBy)
	assert.False(t, brand.CreatedAt.IsZero())
	assert.False(t, brand.IsDeleted())

	brand.StampUpdated("user-2")
	require.NotNil(t, brand.UpdatedBy)
	assert.Equal(t, "user-2", *brand.UpdatedBy)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	brand.StampDeleted("user-3", at)
	assert.True(t, brand.IsDeleted())
	require.NotNil(t, brand.DeletedAt)
	assert.Equal(t, at, *brand.DeletedAt)
	assert.Equal(t, "user-3", *brand.DeletedBy)
}
