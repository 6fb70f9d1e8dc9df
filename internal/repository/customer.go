package repository

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
)

// FindCustomer loads an active customer by id
func FindCustomer(id uint) (*model.Customer, error) {
	var customer model.Customer
	err := database.GetDB().Scopes(Active).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers returns all active customers
func ListCustomers() ([]model.Customer, error) {
	var customers []model.Customer
	err := database.GetDB().
		Scopes(Active).
		Order("last_name, name").
		Find(&customers).Error
	return customers, err
}

// CreateCustomer persists a new customer
func CreateCustomer(customer *model.Customer) error {
	return database.GetDB().Create(customer).Error
}

// SaveCustomer persists customer mutations
func SaveCustomer(customer *model.Customer) error {
	return database.GetDB().Save(customer).Error
}
