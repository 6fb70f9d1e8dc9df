package model

// ProductImage is a reference to an image held by the external asset
// store. Position gives the deterministic display order (1-based);
// removal is keyed by AssetID since URLs are not unique across
// renditions.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	URL       string `json:"url" gorm:"type:varchar(500);not null"`
	AssetID   string `json:"asset_id" gorm:"type:varchar(255);not null;index"`
	AltText   string `json:"alt_text,omitempty" gorm:"type:varchar(255)"`
	Position  int    `json:"position" gorm:"not null;default:0"`
	IsPrimary bool   `json:"is_primary" gorm:"not null;default:false"`
	Audit
}
