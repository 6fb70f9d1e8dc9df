package repository

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
)

// FindAccountByUserID loads the active shadow account for an external
// identity user id
func FindAccountByUserID(userID string) (*model.Account, error) {
	var account model.Account
	err := database.GetDB().
		Scopes(Active).
		Where("user_id = ?", userID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount persists a new shadow account
func CreateAccount(account *model.Account) error {
	return database.GetDB().Create(account).Error
}

// SaveAccount persists account mutations
func SaveAccount(account *model.Account) error {
	return database.GetDB().Save(account).Error
}
