package model

import (
	"sort"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. It belongs to a brand and
// optionally to a category or line scoped to that same brand, and
// exclusively owns its ordered image collection.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(50);not null"`
	Slug        string          `json:"slug" gorm:"type:varchar(60)"`
	Description string          `json:"description" gorm:"type:varchar(255)"`
	BrandID     uint            `json:"brand_id" gorm:"index;not null"`
	CategoryID  *uint           `json:"category_id,omitempty" gorm:"index"`
	LineID      *uint           `json:"line_id,omitempty" gorm:"index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(15,2);not null"`
	Stock       decimal.Decimal `json:"stock" gorm:"type:decimal(8,2);not null"`
	Images      []ProductImage  `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Audit
}

// NewProduct builds a product under the given brand with its initial
// price and stock
func NewProduct(name, description string, brandID uint, price, stock decimal.Decimal) *Product {
	return &Product{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		BrandID:     brandID,
		Price:       price,
		Stock:       stock,
	}
}

// Rename changes the product name and regenerates the slug
func (p *Product) Rename(name string) {
	p.Name = name
	p.Slug = slug.Make(name)
}

// ChangeDescription replaces the product description
func (p *Product) ChangeDescription(description string) {
	p.Description = description
}

// ChangePrice replaces the product price. Sale lines are not affected:
// they keep the price snapshotted when the line was added.
func (p *Product) ChangePrice(price decimal.Decimal) {
	p.Price = price
}

// AssignCategory links the product to a category. The category must
// belong to the product's brand.
func (p *Product) AssignCategory(category *Category) error {
	if !category.BelongsTo(p.BrandID) {
		return ErrBrandMismatch
	}
	id := category.ID
	p.CategoryID = &id
	return nil
}

// RemoveCategory clears the category assignment
func (p *Product) RemoveCategory() {
	p.CategoryID = nil
}

// AssignLine links the product to a line. The line must belong to the
// product's brand.
func (p *Product) AssignLine(line *Line) error {
	if line.BrandID != p.BrandID {
		return ErrBrandMismatch
	}
	id := line.ID
	p.LineID = &id
	return nil
}

// RemoveLine clears the line assignment
func (p *Product) RemoveLine() {
	p.LineID = nil
}

// HasLine reports whether the product has a line assigned
func (p *Product) HasLine() bool {
	return p.LineID != nil
}

// CanSell reports whether the current stock covers the quantity
func (p *Product) CanSell(quantity decimal.Decimal) bool {
	return p.Stock.GreaterThanOrEqual(quantity)
}

// IncreaseStock adds the quantity to the current stock
func (p *Product) IncreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidQuantity
	}
	p.Stock = p.Stock.Add(quantity)
	return nil
}

// DecreaseStock subtracts the quantity from the current stock. The
// stock never goes negative: a quantity exceeding the current stock is
// rejected and the stock is left unchanged.
func (p *Product) DecreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidQuantity
	}
	if !p.CanSell(quantity) {
		return ErrInsufficientStock
	}
	p.Stock = p.Stock.Sub(quantity)
	return nil
}

// AddImage appends an asset reference to the product. A position of 0
// defaults to the next free 1-based position; the first active image
// defaults to primary when isPrimary is not requested.
func (p *Product) AddImage(url, assetID, altText string, position int, isPrimary bool) *ProductImage {
	if position == 0 {
		position = p.NextImagePosition()
	}
	if !isPrimary && len(p.ActiveImages()) == 0 {
		isPrimary = true
	}

	image := ProductImage{
		ProductID: p.ID,
		URL:       url,
		AssetID:   assetID,
		AltText:   altText,
		Position:  position,
		IsPrimary: isPrimary,
	}
	p.Images = append(p.Images, image)
	return &p.Images[len(p.Images)-1]
}

// NextImagePosition returns the 1-based position following the highest
// one in use. Soft-deleted images keep their position reserved so the
// sequence never reassigns.
func (p *Product) NextImagePosition() int {
	max := 0
	for _, img := range p.Images {
		if img.Position > max {
			max = img.Position
		}
	}
	return max + 1
}

// RemoveImage soft-deletes the image with the given asset id. It
// returns the removed image, or nil when no active image matches.
func (p *Product) RemoveImage(assetID, actor string) *ProductImage {
	for i := range p.Images {
		if p.Images[i].AssetID == assetID && !p.Images[i].IsDeleted() {
			p.Images[i].StampDeleted(actor, nowUTC())
			return &p.Images[i]
		}
	}
	return nil
}

// ActiveImages returns the non-deleted images in ascending position
// order
func (p *Product) ActiveImages() []ProductImage {
	images := make([]ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		if !img.IsDeleted() {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].Position < images[j].Position
	})
	return images
}

// PrimaryImage returns the active primary image, falling back to the
// first active image. Nil when the product has no active images.
func (p *Product) PrimaryImage() *ProductImage {
	active := p.ActiveImages()
	if len(active) == 0 {
		return nil
	}
	for i := range active {
		if active[i].IsPrimary {
			return &active[i]
		}
	}
	return &active[0]
}

// SoftDelete marks the product and every owned image as deleted with an
// identical actor and timestamp
func (p *Product) SoftDelete(actor string, at time.Time) {
	p.StampDeleted(actor, at)
	for i := range p.Images {
		if !p.Images[i].IsDeleted() {
			p.Images[i].StampDeleted(actor, at)
		}
	}
}

// ImageURLs returns the active image URLs in ascending position order
func (p *Product) ImageURLs() []string {
	active := p.ActiveImages()
	urls := make([]string, 0, len(active))
	for _, img := range active {
		urls = append(urls, img.URL)
	}
	return urls
}
