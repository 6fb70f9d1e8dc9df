package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct() *Product {
	return NewProduct("Trail Runner", "lightweight shoe", 1,
		decimal.NewFromInt(120), decimal.NewFromInt(10))
}

func TestProductStockMovements(t *testing.T) {
	product := newTestProduct()

	require.NoError(t, product.IncreaseStock(decimal.NewFromInt(5)))
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(15)))

	require.NoError(t, product.DecreaseStock(decimal.NewFromInt(15)))
	assert.True(t, product.Stock.Equal(decimal.Zero))
}

func TestProductDecreaseStockNeverGoesNegative(t *testing.T) {
	product := newTestProduct()

	err := product.DecreaseStock(decimal.NewFromInt(11))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)), "stock must be left unchanged")
}

func TestProductStockRejectsNonPositiveQuantities(t *testing.T) {
	product := newTestProduct()

	assert.ErrorIs(t, product.IncreaseStock(decimal.Zero), ErrInvalidQuantity)
	assert.ErrorIs(t, product.DecreaseStock(decimal.NewFromInt(-1)), ErrInvalidQuantity)
}

func TestProductCanSell(t *testing.T) {
	product := newTestProduct()

	assert.True(t, product.CanSell(decimal.NewFromInt(10)))
	assert.False(t, product.CanSell(decimal.NewFromFloat(10.5)))
}

func TestProductAssignCategoryRejectsForeignBrand(t *testing.T) {
	product := newTestProduct()

	otherBrand := uint(2)
	foreign := NewCategory("Shoes", &otherBrand)
	foreign.ID = 9
	assert.ErrorIs(t, product.AssignCategory(foreign), ErrBrandMismatch)
	assert.Nil(t, product.CategoryID)

	sameBrand := uint(1)
	owned := NewCategory("Shoes", &sameBrand)
	owned.ID = 10
	require.NoError(t, product.AssignCategory(owned))
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, uint(10), *product.CategoryID)

	product.RemoveCategory()
	assert.Nil(t, product.CategoryID)
}

func TestProductAssignLineRejectsForeignBrand(t *testing.T) {
	product := newTestProduct()

	foreign := NewLine("Running", 2)
	assert.ErrorIs(t, product.AssignLine(foreign), ErrBrandMismatch)
	assert.False(t, product.HasLine())

	owned := NewLine("Running", 1)
	owned.ID = 5
	require.NoError(t, product.AssignLine(owned))
	assert.True(t, product.HasLine())
}

func TestProductAddImagePositionsAndPrimary(t *testing.T) {
	product := newTestProduct()

	first := product.AddImage("https://cdn/a.jpg", "asset-a", "front", 0, false)
	second := product.AddImage("https://cdn/b.jpg", "asset-b", "side", 0, false)
	third := product.AddImage("https://cdn/c.jpg", "asset-c", "back", 0, false)

	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 3, third.Position)

	// First image becomes primary implicitly
	assert.True(t, first.IsPrimary)
	assert.False(t, second.IsPrimary)

	primary := product.PrimaryImage()
	require.NotNil(t, primary)
	assert.Equal(t, "asset-a", primary.AssetID)

	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg", "https://cdn/c.jpg"},
		product.ImageURLs())
}

func TestProductRemoveImageKeepsPositionsReserved(t *testing.T) {
	product := newTestProduct()
	product.AddImage("https://cdn/a.jpg", "asset-a", "", 0, false)
	product.AddImage("https://cdn/b.jpg", "asset-b", "", 0, false)

	removed := product.RemoveImage("asset-b", "user-1")
	require.NotNil(t, removed)
	assert.True(t, removed.IsDeleted())

	// Deleted image no longer shows but its position stays taken
	assert.Len(t, product.ActiveImages(), 1)
	assert.Equal(t, 3, product.NextImagePosition())

	// Removing the same asset again finds nothing active
	assert.Nil(t, product.RemoveImage("asset-b", "user-1"))
	assert.Nil(t, product.RemoveImage("asset-x", "user-1"))
}

func TestProductPrimaryFallsBackToFirstActive(t *testing.T) {
	product := newTestProduct()
	product.AddImage("https://cdn/a.jpg", "asset-a", "", 0, false)
	product.AddImage("https://cdn/b.jpg", "asset-b", "", 0, false)

	product.RemoveImage("asset-a", "user-1")

	primary := product.PrimaryImage()
	require.NotNil(t, primary)
	assert.Equal(t, "asset-b", primary.AssetID)
}

func TestProductSoftDeleteCascadesToImages(t *testing.T) {
	product := newTestProduct()
	product.AddImage("https://cdn/a.jpg", "asset-a", "", 0, false)
	product.AddImage("https://cdn/b.jpg", "asset-b", "", 0, false)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	product.SoftDelete("user-1", at)

	assert.True(t, product.IsDeleted())
	for _, img := range product.Images {
		require.NotNil(t, img.DeletedAt)
		assert.Equal(t, at, *img.DeletedAt)
		assert.Equal(t, "user-1", *img.DeletedBy)
	}
	assert.Empty(t, product.ActiveImages())
	assert.Nil(t, product.PrimaryImage())
}

func TestProductReadProjectionExcludesDeletedImages(t *testing.T) {
	product := newTestProduct()
	product.AddImage("https://cdn/a.jpg", "asset-a", "", 0, false)
	product.AddImage("https://cdn/b.jpg", "asset-b", "", 0, false)
	product.RemoveImage("asset-b", "user-1")

	// Read responses serve the active projection, never the raw
	// collection with its deletion stamps
	product.Images = product.ActiveImages()
	payload, err := json.Marshal(product)
	require.NoError(t, err)

	assert.Contains(t, string(payload), "asset-a")
	assert.NotContains(t, string(payload), "asset-b")
	assert.NotContains(t, string(payload), "deleted_at")
	assert.NotContains(t, string(payload), "deleted_by")
}

func TestProductRenameRegeneratesSlug(t *testing.T) {
	product := newTestProduct()
	product.Rename("City Walker 2")

	assert.Equal(t, "city-walker-2", product.Slug)
}
