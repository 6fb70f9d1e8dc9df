package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/repository"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/AGKL-Team/AGKL-Sales-backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleLineRequest is one requested line of a new sale
type SaleLineRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Quantity  string `json:"quantity" validate:"required"`
}

// CreateSaleRequest creates a sale for a customer
type CreateSaleRequest struct {
	CustomerID uint              `json:"customer_id" validate:"required"`
	Products   []SaleLineRequest `json:"products" validate:"required,min=1,dive"`
}

// CreateSale handles recording a new sale. Each line snapshots the
// product's current price as its unit price. The sale number is
// allocated inside the insert transaction.
func CreateSale(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := repository.FindCustomer(req.CustomerID); err != nil {
		log.Warn("Customer not found for sale", zap.Uint("customer_id", req.CustomerID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	// Number is provisional here; CreateSale reallocates it inside the
	// transaction
	sale := model.NewSale(0, req.CustomerID)
	sale.StampCreated(actor)

	for _, line := range req.Products {
		quantity, err := decimal.NewFromString(line.Quantity)
		if err != nil || !quantity.IsPositive() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive decimal"})
		}

		product, err := repository.FindProduct(line.ProductID)
		if err != nil {
			log.Warn("Product not found for sale", zap.Uint("product_id", line.ProductID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}

		sale.AddProduct(product, quantity)
		sale.Products[len(sale.Products)-1].StampCreated(actor)
	}

	if err := sale.Validate(); err != nil {
		log.Error("Sale failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := repository.CreateSale(sale); err != nil {
		if errors.Is(err, repository.ErrSaleNumberExhausted) {
			log.Error("Sale number allocation kept colliding", zap.Error(err))
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to create sale", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create sale"})
	}

	log.Info("Sale created successfully",
		zap.Uint("sale_id", sale.ID),
		zap.Int("number", sale.Number),
		zap.Uint("customer_id", sale.CustomerID),
		zap.Int("lines", len(sale.Products)),
		zap.String("total", sale.Total().String()))
	prometheus.RecordSaleOperation("create")
	return c.JSON(http.StatusCreated, echo.Map{
		"sale":  sale,
		"total": sale.Total(),
	})
}

// ListSales handles retrieving all active sales with their lines
func ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	sales, err := repository.ListSales()
	if err != nil {
		log.Error("Failed to list sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sales"})
	}

	log.Info("Sales retrieved successfully", zap.Int("count", len(sales)))
	return c.JSON(http.StatusOK, sales)
}

// GetSale handles retrieving a single active sale by ID
func GetSale(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
	}

	sale, err := repository.FindSale(id)
	if err != nil {
		log.Warn("Sale not found", zap.Uint("sale_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"sale":  sale,
		"total": sale.Total(),
	})
}

// GetNextSaleNumber reports the number the next sale would receive
func GetNextSaleNumber(c echo.Context) error {
	log := logger.FromContext(c)

	number, err := repository.NextSaleNumber()
	if err != nil {
		log.Error("Failed to compute next sale number", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute next sale number"})
	}

	return c.JSON(http.StatusOK, echo.Map{"next_number": number})
}

// DeleteSale handles soft-deleting a sale, cascading the identical
// deletion stamp to every line
func DeleteSale(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
	}

	sale, err := repository.FindSale(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
	}

	sale.SoftDelete(actor, time.Now().UTC())
	if err := repository.SaveSale(sale); err != nil {
		log.Error("Failed to delete sale", zap.Uint("sale_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete sale"})
	}

	log.Info("Sale deleted successfully", zap.Uint("sale_id", id), zap.Int("number", sale.Number))
	prometheus.RecordSaleOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "sale deleted successfully"})
}
