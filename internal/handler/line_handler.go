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

// CreateLineRequest creates a line under a brand
type CreateLineRequest struct {
	Name    string `json:"name" validate:"required,max=30"`
	BrandID uint   `json:"brand_id" validate:"required"`
}

// UpdateLineRequest is the JSON patch for a line
type UpdateLineRequest struct {
	Name string `json:"name" validate:"required,max=30"`
}

// CreateLine handles creating a new line under a brand. The name must
// be unique within the brand, case-insensitive.
func CreateLine(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	var req CreateLineRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	brand, err := repository.FindBrand(req.BrandID)
	if err != nil {
		log.Warn("Brand not found for line", zap.Uint("brand_id", req.BrandID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
	}

	exists, err := repository.LineNameExistsInBrand(req.Name, brand.ID)
	if err != nil {
		log.Error("Failed to check line name", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create line"})
	}
	if exists {
		log.Warn("Line with this name already exists in brand",
			zap.String("name", req.Name),
			zap.Uint("brand_id", brand.ID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a line with this name already exists for this brand"})
	}

	line := model.NewLine(req.Name, brand.ID)
	line.StampCreated(actor)
	brand.AddLine(line)

	if err := repository.CreateLine(line); err != nil {
		log.Error("Failed to create line", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create line"})
	}

	log.Info("Line created successfully",
		zap.Uint("line_id", line.ID),
		zap.String("name", line.Name),
		zap.Uint("brand_id", brand.ID))
	prometheus.RecordCatalogOperation("line", "create")
	return c.JSON(http.StatusCreated, line)
}

// ListLines handles retrieving active lines, optionally filtered by
// brand
func ListLines(c echo.Context) error {
	log := logger.FromContext(c)

	lines, err := repository.ListLines(queryUint(c, "brand_id"))
	if err != nil {
		log.Error("Failed to list lines", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve lines"})
	}

	return c.JSON(http.StatusOK, lines)
}

// GetLine handles retrieving a single active line by ID
func GetLine(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line id"})
	}

	line, err := repository.FindLine(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "line not found"})
	}

	return c.JSON(http.StatusOK, line)
}

// UpdateLine handles renaming a line
func UpdateLine(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line id"})
	}

	var req UpdateLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	line, err := repository.FindLine(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "line not found"})
	}

	if req.Name != line.Name {
		exists, err := repository.LineNameExistsInBrand(req.Name, line.BrandID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update line"})
		}
		if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a line with this name already exists for this brand"})
		}
		line.Rename(req.Name)
	}
	line.StampUpdated(actor)

	if err := repository.SaveLine(line); err != nil {
		log.Error("Failed to update line", zap.Uint("line_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update line"})
	}

	prometheus.RecordCatalogOperation("line", "update")
	return c.JSON(http.StatusOK, line)
}

// DeleteLine handles soft-deleting a line
func DeleteLine(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line id"})
	}

	line, err := repository.FindLine(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "line not found"})
	}

	line.StampDeleted(actor, time.Now().UTC())
	if err := repository.SaveLine(line); err != nil {
		log.Error("Failed to delete line", zap.Uint("line_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete line"})
	}

	prometheus.RecordCatalogOperation("line", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "line deleted successfully"})
}
