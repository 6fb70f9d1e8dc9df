package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable-after-creation record of a transaction: a
// sequential number, a customer, a date, and snapshot-priced lines. It
// exclusively owns its lines; only soft deletion mutates it afterward,
// cascading the same stamp to every line.
type Sale struct {
	ID         uint          `json:"id" gorm:"primarykey"`
	Number     int           `json:"number" gorm:"uniqueIndex;not null"`
	Date       time.Time     `json:"date" gorm:"not null"`
	CustomerID uint          `json:"customer_id" gorm:"index;not null"`
	Products   []ProductSale `json:"products" gorm:"foreignKey:SaleID"`
	Audit
}

// ProductSale is one line of a sale. UnitPrice is captured from the
// product at the moment the line is added, never re-read afterward.
type ProductSale struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	SaleID    uint            `json:"sale_id" gorm:"index"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Quantity  decimal.Decimal `json:"quantity" gorm:"type:decimal(8,2);not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(15,2);not null"`
	Audit

	// In-memory back-references used by Validate before persistence
	Product *Product `json:"-" gorm:"-"`
	Sale    *Sale    `json:"-" gorm:"-"`
}

// NewSale builds a sale for the customer with the allocated number
func NewSale(number int, customerID uint) *Sale {
	return &Sale{
		Number:     number,
		Date:       time.Now().UTC(),
		CustomerID: customerID,
	}
}

// AddProduct appends a line for the product, snapshotting its current
// price as the line's unit price
func (s *Sale) AddProduct(product *Product, quantity decimal.Decimal) {
	line := ProductSale{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Product:   product,
		Sale:      s,
	}
	s.Products = append(s.Products, line)
}

// RemoveProduct drops the lines referencing the product
func (s *Sale) RemoveProduct(productID uint) {
	lines := s.Products[:0]
	for _, line := range s.Products {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	s.Products = lines
}

// Total returns the sum over lines of quantity times unit price
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Products {
		if line.IsDeleted() {
			continue
		}
		total = total.Add(line.UnitPrice.Mul(line.Quantity))
	}
	return total
}

// Validate checks that every line carries a resolved product and a
// back-reference to this sale. A sale with any orphaned line must not
// be persisted.
func (s *Sale) Validate() error {
	for _, line := range s.Products {
		if line.Product == nil || line.Sale == nil {
			return ErrOrphanedSaleLine
		}
	}
	return nil
}

// SoftDelete marks the sale and every owned line as deleted with an
// identical actor and timestamp
func (s *Sale) SoftDelete(actor string, at time.Time) {
	s.StampDeleted(actor, at)
	for i := range s.Products {
		s.Products[i].StampDeleted(actor, at)
	}
}
