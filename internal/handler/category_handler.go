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

// CreateCategoryRequest creates a category, optionally scoped to a brand
type CreateCategoryRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	BrandID *uint  `json:"brand_id"`
}

// UpdateCategoryRequest is the JSON patch for a category
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CreateCategory handles creating a new category. A brand-scoped
// category requires the brand to exist and the name to be unique within
// it; a global category requires global uniqueness.
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.BrandID != nil {
		if _, err := repository.FindBrand(*req.BrandID); err != nil {
			log.Warn("Brand not found for category", zap.Uint("brand_id", *req.BrandID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}

		exists, err := repository.CategoryNameExistsInBrand(req.Name, *req.BrandID)
		if err != nil {
			log.Error("Failed to check category name", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
		}
		if exists {
			log.Warn("Category with this name already exists in brand",
				zap.String("name", req.Name),
				zap.Uint("brand_id", *req.BrandID))
			return c.JSON(http.StatusConflict, echo.Map{"error": "a category with this name already exists for this brand"})
		}
	} else {
		exists, err := repository.CategoryNameExistsGlobal(req.Name)
		if err != nil {
			log.Error("Failed to check category name", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
		}
		if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a category with this name already exists"})
		}
	}

	category := model.NewCategory(req.Name, req.BrandID)
	category.StampCreated(actor)

	if err := repository.CreateCategory(category); err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}

	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	prometheus.RecordCatalogOperation("category", "create")
	return c.JSON(http.StatusCreated, category)
}

// ListCategories handles retrieving active categories, optionally
// filtered by brand
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	categories, err := repository.ListCategories(queryUint(c, "brand_id"))
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles retrieving a single active category by ID
func GetCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	category, err := repository.FindCategory(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	return c.JSON(http.StatusOK, category)
}

// UpdateCategory handles renaming a category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := repository.FindCategory(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	if req.Name != category.Name {
		if category.BrandID != nil {
			exists, err := repository.CategoryNameExistsInBrand(req.Name, *category.BrandID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
			}
			if exists {
				return c.JSON(http.StatusConflict, echo.Map{"error": "a category with this name already exists for this brand"})
			}
		} else {
			exists, err := repository.CategoryNameExistsGlobal(req.Name)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
			}
			if exists {
				return c.JSON(http.StatusConflict, echo.Map{"error": "a category with this name already exists"})
			}
		}
		category.Rename(req.Name)
	}
	category.StampUpdated(actor)

	if err := repository.SaveCategory(category); err != nil {
		log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
	}

	prometheus.RecordCatalogOperation("category", "update")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles soft-deleting a category
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	category, err := repository.FindCategory(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	category.StampDeleted(actor, time.Now().UTC())
	if err := repository.SaveCategory(category); err != nil {
		log.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
	}

	prometheus.RecordCatalogOperation("category", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}

// AssociateCategoryToBrand links an existing category to a brand. The
// operation is idempotent: an already-linked pair is a silent no-op. A
// category owned by a different brand is a conflict.
func AssociateCategoryToBrand(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	brandID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	brand, err := repository.FindBrand(brandID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
	}
	category, err := repository.FindCategory(categoryID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	// Already linked: nothing to do
	if category.BelongsTo(brand.ID) {
		return c.JSON(http.StatusOK, echo.Map{"message": "category already associated"})
	}

	if category.BrandID != nil {
		log.Warn("Category already belongs to another brand",
			zap.Uint("category_id", categoryID),
			zap.Uint("brand_id", *category.BrandID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "category already belongs to another brand"})
	}

	brand.AddCategory(category)
	category.StampUpdated(actor)

	if err := repository.SaveCategory(category); err != nil {
		log.Error("Failed to associate category", zap.Uint("category_id", categoryID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to associate category"})
	}

	log.Info("Category associated to brand",
		zap.Uint("category_id", categoryID),
		zap.Uint("brand_id", brandID))
	prometheus.RecordCatalogOperation("category", "associate")
	return c.JSON(http.StatusOK, echo.Map{"message": "category associated successfully"})
}
