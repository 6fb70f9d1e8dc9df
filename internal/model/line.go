package model

// Line is a brand-scoped product line. Its name is unique within the
// owning brand, case-insensitive.
type Line struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Name    string `json:"name" gorm:"type:varchar(30);not null"`
	BrandID uint   `json:"brand_id" gorm:"index;not null"`
	Audit
}

// NewLine builds a line owned by the given brand
func NewLine(name string, brandID uint) *Line {
	return &Line{Name: name, BrandID: brandID}
}

// Rename changes the line name
func (l *Line) Rename(name string) {
	l.Name = name
}
