package model

// Account is the local one-to-one shadow record of an identity
// provider user, keyed by the provider's external user id. It carries
// the profile attributes the provider does not store.
type Account struct {
	ID     uint    `json:"id" gorm:"primarykey"`
	UserID string  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Height float64 `json:"height"`
	Audit
}

// NewAccount builds an account for the external user id
func NewAccount(userID string, height float64) *Account {
	return &Account{UserID: userID, Height: height}
}

// ChangeHeight updates the stored height
func (a *Account) ChangeHeight(height float64) {
	a.Height = height
}
