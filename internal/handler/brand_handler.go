package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/repository"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/assetstore"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/AGKL-Team/AGKL-Sales-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateBrand handles creating a new brand. The request is multipart:
// "name", optional "description", repeated "lines" fields for inline
// lines, and the "logo" file. The logo is uploaded to the asset store
// before anything is persisted; an upload failure aborts the operation.
func CreateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	name := c.FormValue("name")
	description := c.FormValue("description")
	if name == "" || len(name) > 50 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required and must be at most 50 characters"})
	}
	if len(description) > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description must be at most 100 characters"})
	}

	// Duplicate name check against active brands
	defer prometheus.TrackDBOperation("query")(time.Now())
	exists, err := repository.BrandNameExists(name)
	if err != nil {
		log.Error("Failed to check brand name", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create brand"})
	}
	if exists {
		log.Warn("Brand with this name already exists", zap.String("name", name))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a brand with this name already exists"})
	}

	// Upload the logo first; nothing is persisted when it fails
	logoFile, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "logo file is required"})
	}
	logoData, err := readFormFile(logoFile)
	if err != nil {
		log.Error("Failed to read logo file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read logo file"})
	}

	upload, err := assetstore.Upload(logoFile.Filename, logoData)
	if err != nil {
		log.Error("Logo upload failed", zap.String("brand", name), zap.Error(err))
		prometheus.RecordAssetStoreOperation("upload", "error")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to upload logo: " + err.Error()})
	}
	prometheus.RecordAssetStoreOperation("upload", "ok")

	brand := model.NewBrand(name, description, upload.URL, upload.AssetID)
	brand.StampCreated(actor)

	// Inline lines are created with the brand; AddLine drops duplicates
	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		for _, lineName := range form.Value["lines"] {
			if lineName == "" || len(lineName) > 30 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "line names must be between 1 and 30 characters"})
			}
			line := model.NewLine(lineName, 0)
			line.StampCreated(actor)
			brand.AddLine(line)
		}
	}

	if err := repository.CreateBrand(brand); err != nil {
		log.Error("Failed to create brand", zap.String("name", name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create brand"})
	}

	log.Info("Brand created successfully",
		zap.Uint("brand_id", brand.ID),
		zap.String("name", brand.Name),
		zap.Int("lines", len(brand.Lines)))
	prometheus.RecordCatalogOperation("brand", "create")
	return c.JSON(http.StatusCreated, brand)
}

// ListBrands handles retrieving all active brands
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)

	brands, err := repository.ListBrands()
	if err != nil {
		log.Error("Failed to list brands", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve brands"})
	}

	log.Info("Brands retrieved successfully", zap.Int("count", len(brands)))
	return c.JSON(http.StatusOK, brands)
}

// GetBrand handles retrieving a single active brand by ID
func GetBrand(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}

	brand, err := repository.FindBrand(id)
	if err != nil {
		log.Warn("Brand not found", zap.Uint("brand_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
	}

	return c.JSON(http.StatusOK, brand)
}

// UpdateBrand handles patching a brand. The request is multipart:
// optional "name" and "description" fields and an optional replacement
// "logo" file. A new logo is uploaded before the old asset is dropped;
// deleting the old asset is best-effort.
func UpdateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}

	brand, err := repository.FindBrand(id)
	if err != nil {
		log.Warn("Brand not found for update", zap.Uint("brand_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
	}

	if name := c.FormValue("name"); name != "" && name != brand.Name {
		if len(name) > 50 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at most 50 characters"})
		}
		exists, err := repository.BrandNameExists(name)
		if err != nil {
			log.Error("Failed to check brand name", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update brand"})
		}
		if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a brand with this name already exists"})
		}
		brand.Rename(name)
	}
	if description := c.FormValue("description"); description != "" {
		if len(description) > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "description must be at most 100 characters"})
		}
		brand.ChangeDescription(description)
	}

	if logoFile, fileErr := c.FormFile("logo"); fileErr == nil {
		logoData, err := readFormFile(logoFile)
		if err != nil {
			log.Error("Failed to read logo file", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read logo file"})
		}

		upload, err := assetstore.Upload(logoFile.Filename, logoData)
		if err != nil {
			log.Error("Logo upload failed", zap.Uint("brand_id", id), zap.Error(err))
			prometheus.RecordAssetStoreOperation("upload", "error")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to upload logo: " + err.Error()})
		}
		prometheus.RecordAssetStoreOperation("upload", "ok")

		oldAssetID := brand.LogoAssetID
		brand.ChangeLogo(upload.URL, upload.AssetID)

		// The replaced asset is orphaned; dropping it is best-effort
		if oldAssetID != "" {
			if err := assetstore.Delete(oldAssetID); err != nil {
				log.Error("Asset delete failed, continuing",
					zap.String("asset_id", oldAssetID),
					zap.Error(err))
				prometheus.RecordAssetStoreOperation("delete", "error")
			} else {
				prometheus.RecordAssetStoreOperation("delete", "ok")
			}
		}
	}
	brand.StampUpdated(actor)

	if err := repository.SaveBrand(brand); err != nil {
		log.Error("Failed to update brand", zap.Uint("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update brand"})
	}

	log.Info("Brand updated successfully", zap.Uint("brand_id", brand.ID), zap.String("name", brand.Name))
	prometheus.RecordCatalogOperation("brand", "update")
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand handles soft-deleting a brand
func DeleteBrand(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}

	brand, err := repository.FindBrand(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		log.Error("Failed to load brand", zap.Uint("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete brand"})
	}

	brand.StampDeleted(actor, time.Now().UTC())
	if err := repository.SaveBrand(brand); err != nil {
		log.Error("Failed to delete brand", zap.Uint("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete brand"})
	}

	log.Info("Brand deleted successfully", zap.Uint("brand_id", id))
	prometheus.RecordCatalogOperation("brand", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "brand deleted successfully"})
}
