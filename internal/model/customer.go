package model

// Customer is a sale counterparty. It can only be soft-deleted while no
// active sale references it.
type Customer struct {
	ID       uint   `json:"id" gorm:"primarykey"`
	Name     string `json:"name" gorm:"type:varchar(50);not null"`
	LastName string `json:"last_name" gorm:"type:varchar(50);not null"`
	Audit
}

// NewCustomer builds a customer
func NewCustomer(name, lastName string) *Customer {
	return &Customer{Name: name, LastName: lastName}
}

// Rename changes the customer's first name
func (c *Customer) Rename(name string) {
	c.Name = name
}

// ChangeLastName changes the customer's last name
func (c *Customer) ChangeLastName(lastName string) {
	c.LastName = lastName
}
