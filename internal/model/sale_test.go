package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleAddProductSnapshotsPrice(t *testing.T) {
	product := NewProduct("Trail Runner", "", 1, decimal.NewFromInt(120), decimal.NewFromInt(10))
	product.ID = 3

	sale := NewSale(1, 9)
	sale.AddProduct(product, decimal.NewFromInt(2))

	require.Len(t, sale.Products, 1)
	line := sale.Products[0]
	assert.Equal(t, uint(3), line.ProductID)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(120)))

	// A later price change does not touch the recorded line
	product.ChangePrice(decimal.NewFromInt(150))
	assert.True(t, sale.Products[0].UnitPrice.Equal(decimal.NewFromInt(120)))
}

func TestSaleTotal(t *testing.T) {
	shoe := NewProduct("Shoe", "", 1, decimal.NewFromFloat(99.90), decimal.NewFromInt(10))
	shoe.ID = 1
	sock := NewProduct("Sock", "", 1, decimal.NewFromFloat(4.50), decimal.NewFromInt(50))
	sock.ID = 2

	sale := NewSale(1, 9)
	sale.AddProduct(shoe, decimal.NewFromInt(1))
	sale.AddProduct(sock, decimal.NewFromInt(3))

	assert.True(t, sale.Total().Equal(decimal.NewFromFloat(113.40)))
}

func TestSaleTotalSkipsDeletedLines(t *testing.T) {
	shoe := NewProduct("Shoe", "", 1, decimal.NewFromInt(100), decimal.NewFromInt(10))
	shoe.ID = 1
	sock := NewProduct("Sock", "", 1, decimal.NewFromInt(5), decimal.NewFromInt(50))
	sock.ID = 2

	sale := NewSale(1, 9)
	sale.AddProduct(shoe, decimal.NewFromInt(1))
	sale.AddProduct(sock, decimal.NewFromInt(2))
	sale.Products[1].StampDeleted("user-1", time.Now().UTC())

	assert.True(t, sale.Total().Equal(decimal.NewFromInt(100)))
}

func TestSaleRemoveProduct(t *testing.T) {
	shoe := NewProduct("Shoe", "", 1, decimal.NewFromInt(100), decimal.NewFromInt(10))
	shoe.ID = 1
	sock := NewProduct("Sock", "", 1, decimal.NewFromInt(5), decimal.NewFromInt(50))
	sock.ID = 2

	sale := NewSale(1, 9)
	sale.AddProduct(shoe, decimal.NewFromInt(1))
	sale.AddProduct(sock, decimal.NewFromInt(2))

	sale.RemoveProduct(1)
	require.Len(t, sale.Products, 1)
	assert.Equal(t, uint(2), sale.Products[0].ProductID)
}

func TestSaleValidateRejectsOrphanedLines(t *testing.T) {
	product := NewProduct("Shoe", "", 1, decimal.NewFromInt(100), decimal.NewFromInt(10))
	product.ID = 1

	sale := NewSale(1, 9)
	sale.AddProduct(product, decimal.NewFromInt(1))
	require.NoError(t, sale.Validate())

	sale.Products[0].Product = nil
	assert.ErrorIs(t, sale.Validate(), ErrOrphanedSaleLine)

	sale.Products[0].Product = product
	sale.Products[0].Sale = nil
	assert.ErrorIs(t, sale.Validate(), ErrOrphanedSaleLine)
}

func TestSaleSoftDeleteCascadesIdenticalStamp(t *testing.T) {
	shoe := NewProduct("Shoe", "", 1, decimal.NewFromInt(100), decimal.NewFromInt(10))
	shoe.ID = 1
	sock := NewProduct("Sock", "", 1, decimal.NewFromInt(5), decimal.NewFromInt(50))
	sock.ID = 2

	sale := NewSale(4, 9)
	sale.AddProduct(shoe, decimal.NewFromInt(1))
	sale.AddProduct(sock, decimal.NewFromInt(2))

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sale.SoftDelete("user-1", at)

	require.NotNil(t, sale.DeletedAt)
	assert.Equal(t, at, *sale.DeletedAt)
	for _, line := range sale.Products {
		require.NotNil(t, line.DeletedAt)
		assert.Equal(t, at, *line.DeletedAt)
		assert.Equal(t, "user-1", *line.DeletedBy)
	}
}
