package handler

import (
	"net/http"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/repository"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/AGKL-Team/AGKL-Sales-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateCustomerRequest creates a customer
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	LastName string `json:"last_name" validate:"required,max=50"`
}

// UpdateCustomerRequest is the JSON patch for a customer
type UpdateCustomerRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	LastName *string `json:"last_name" validate:"omitempty,min=1,max=50"`
}

// CreateCustomer handles creating a new customer
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer := model.NewCustomer(req.Name, req.LastName)
	customer.StampCreated(actor)

	if err := repository.CreateCustomer(customer); err != nil {
		log.Error("Failed to create customer", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	}

	log.Info("Customer created successfully",
		zap.Uint("customer_id", customer.ID),
		zap.String("name", customer.Name))
	prometheus.RecordCustomerOperation("create")
	return c.JSON(http.StatusCreated, customer)
}

// ListCustomers handles retrieving all active customers
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	customers, err := repository.ListCustomers()
	if err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles retrieving a single active customer by ID
func GetCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	customer, err := repository.FindCustomer(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles patching a customer's name and last name
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := repository.FindCustomer(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	if req.Name != nil {
		customer.Rename(*req.Name)
	}
	if req.LastName != nil {
		customer.ChangeLastName(*req.LastName)
	}
	customer.StampUpdated(actor)

	if err := repository.SaveCustomer(customer); err != nil {
		log.Error("Failed to update customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update customer"})
	}

	prometheus.RecordCustomerOperation("update")
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles soft-deleting a customer. Deletion is refused
// while any active sale references the customer.
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	customer, err := repository.FindCustomer(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	hasSales, err := repository.CustomerHasActiveSales(id)
	if err != nil {
		log.Error("Failed to check sales for customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}
	if hasSales {
		log.Warn("Customer has active sales", zap.Uint("customer_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete customer because they have existing sales"})
	}

	customer.StampDeleted(actor, time.Now().UTC())
	if err := repository.SaveCustomer(customer); err != nil {
		log.Error("Failed to delete customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}

	log.Info("Customer deleted successfully", zap.Uint("customer_id", id))
	prometheus.RecordCustomerOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted successfully"})
}
