package model

// Category is a grouping of products, usually scoped to a brand. A
// category without a brand is global until a brand adopts it; scoped
// names are unique within the owning brand, case-insensitive.
type Category struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Name    string `json:"name" gorm:"type:varchar(50);not null"`
	BrandID *uint  `json:"brand_id,omitempty" gorm:"index"`
	Audit
}

// NewCategory builds a category, optionally owned by a brand
func NewCategory(name string, brandID *uint) *Category {
	return &Category{Name: name, BrandID: brandID}
}

// Rename changes the category name
func (c *Category) Rename(name string) {
	c.Name = name
}

// BelongsTo reports whether the category is owned by the brand
func (c *Category) BelongsTo(brandID uint) bool {
	return c.BrandID != nil && *c.BrandID == brandID
}
