package repository

import (
	"errors"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
	"gorm.io/gorm"
)

// Bounded retries for the number allocation; two concurrent creates
// serialize on the unique index instead of racing.
const saleNumberRetries = 3

// ErrSaleNumberExhausted is returned when number allocation keeps
// colliding after the bounded retries
var ErrSaleNumberExhausted = errors.New("could not allocate a sale number")

// NextSaleNumber returns the number the next sale would receive:
// max + 1 over all recorded sales, 1 when none exist. Soft-deleted
// sales keep their number reserved so a reallocation can never collide
// with the unique index.
func NextSaleNumber() (int, error) {
	return nextSaleNumber(database.GetDB())
}

func nextSaleNumber(tx *gorm.DB) (int, error) {
	var max int
	err := tx.Model(&model.Sale{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// CreateSale allocates the sale number and persists the sale with its
// lines in one transaction. A concurrent allocation of the same number
// trips the unique index; the insert is retried with a fresh number a
// bounded number of times.
func CreateSale(sale *model.Sale) error {
	for attempt := 0; attempt < saleNumberRetries; attempt++ {
		err := database.GetDB().Transaction(func(tx *gorm.DB) error {
			number, err := nextSaleNumber(tx)
			if err != nil {
				return err
			}
			sale.Number = number
			return tx.Create(sale).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// Conflicting insert won the number; reset and try the next one
		sale.ID = 0
		for i := range sale.Products {
			sale.Products[i].ID = 0
			sale.Products[i].SaleID = 0
		}
	}
	return ErrSaleNumberExhausted
}

// FindSale loads an active sale with its active lines
func FindSale(id uint) (*model.Sale, error) {
	var sale model.Sale
	err := database.GetDB().
		Scopes(Active).
		Preload("Products", activeChildren).
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListSales returns all active sales with their active lines
func ListSales() ([]model.Sale, error) {
	var sales []model.Sale
	err := database.GetDB().
		Scopes(Active).
		Preload("Products", activeChildren).
		Order("number").
		Find(&sales).Error
	return sales, err
}

// SaveSale persists sale mutations, cascading to the owned lines. Used
// by the soft-delete cascade, which is the only mutation a sale accepts
// after creation.
func SaveSale(sale *model.Sale) error {
	return database.GetDB().
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error
}

// IsProductInSales reports whether any active sale line references the
// product
func IsProductInSales(productID uint) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.ProductSale{}).
		Scopes(Active).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

// CustomerHasActiveSales reports whether any active sale references the
// customer
func CustomerHasActiveSales(customerID uint) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&model.Sale{}).
		Scopes(Active).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count > 0, err
}
