package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/repository"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/assetstore"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/cache"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/AGKL-Team/AGKL-Sales-backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockRequest moves product stock up or down
type StockRequest struct {
	Operation string `json:"operation" validate:"required,oneof=increase decrease"`
	Quantity  string `json:"quantity" validate:"required"`
}

const productCachePattern = "products:*"

// CreateProduct handles creating a new product. The request is
// multipart: "name", "description", "brand_id", optional "category_id"
// and "line_id", "price", "initial_stock", and repeated "images" files.
// Images are uploaded sequentially in request order; the first becomes
// primary. Any upload failure aborts the whole operation before the
// product is persisted.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	name := c.FormValue("name")
	if len(name) < 3 || len(name) > 50 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be between 3 and 50 characters"})
	}
	description := c.FormValue("description")
	if len(description) > 255 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description must be at most 255 characters"})
	}

	brandID, err := strconv.ParseUint(c.FormValue("brand_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "brand_id is required"})
	}

	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil || price.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a non-negative decimal"})
	}

	stock := decimal.Zero
	if raw := c.FormValue("initial_stock"); raw != "" {
		stock, err = decimal.NewFromString(raw)
		if err != nil || stock.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "initial_stock must be a non-negative decimal"})
		}
	}

	// Duplicate name check against active products
	exists, err := repository.ProductNameExists(name)
	if err != nil {
		log.Error("Failed to check product name", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}
	if exists {
		log.Warn("Product with this name already exists", zap.String("name", name))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a product with this name already exists"})
	}

	// Resolve the brand and the optional category/line before touching
	// the asset store, so scope violations fail fast
	brand, err := repository.FindBrand(uint(brandID))
	if err != nil {
		log.Warn("Brand not found for product", zap.Uint64("brand_id", brandID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
	}

	product := model.NewProduct(name, description, brand.ID, price, stock)

	if raw := c.FormValue("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
		}
		category, err := repository.FindCategory(uint(categoryID))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		if err := product.AssignCategory(category); err != nil {
			log.Warn("Category belongs to a different brand",
				zap.Uint("category_id", category.ID),
				zap.Uint("brand_id", brand.ID))
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
	}

	if raw := c.FormValue("line_id"); raw != "" {
		lineID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line_id"})
		}
		line, err := repository.FindLine(uint(lineID))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "line not found"})
		}
		if err := product.AssignLine(line); err != nil {
			log.Warn("Line belongs to a different brand",
				zap.Uint("line_id", line.ID),
				zap.Uint("brand_id", brand.ID))
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
	}

	product.StampCreated(actor)

	// Upload images sequentially in request order. Assets uploaded
	// before a failure are not rolled back; the operation still aborts
	// with nothing persisted.
	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		for i, fh := range form.File["images"] {
			data, err := readFormFile(fh)
			if err != nil {
				log.Error("Failed to read image file", zap.Int("index", i), zap.Error(err))
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read image file"})
			}

			upload, err := assetstore.Upload(fh.Filename, data)
			if err != nil {
				log.Error("Image upload failed",
					zap.String("product", name),
					zap.Int("index", i),
					zap.Error(err))
				prometheus.RecordAssetStoreOperation("upload", "error")
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to upload image: " + err.Error()})
			}
			prometheus.RecordAssetStoreOperation("upload", "ok")

			altText := fmt.Sprintf("Image %d of %s", i+1, name)
			image := product.AddImage(upload.URL, upload.AssetID, altText, i+1, i == 0)
			image.StampCreated(actor)
		}
	}

	if err := repository.CreateProduct(product); err != nil {
		log.Error("Failed to create product", zap.String("name", name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	cache.Invalidate(c.Request().Context(), productCachePattern)
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("images", len(product.Images)))
	prometheus.RecordCatalogOperation("product", "create")
	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name,
		product.Stock.InexactFloat64())
	return c.JSON(http.StatusCreated, product)
}

// ListProducts handles retrieving active products with optional
// filtering by brand, category, line, and name
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	cacheKey := "products:list:" + c.QueryString()
	var cached []model.Product
	if cache.GetJSON(ctx, cacheKey, &cached) {
		return c.JSON(http.StatusOK, cached)
	}

	filters := repository.ProductFilters{
		BrandID:    queryUint(c, "brand_id"),
		CategoryID: queryUint(c, "category_id"),
		LineID:     queryUint(c, "line_id"),
		Name:       c.QueryParam("name"),
	}

	products, err := repository.ListProducts(filters)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	cache.SetJSON(ctx, cacheKey, products)
	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single active product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	cacheKey := fmt.Sprintf("products:one:%d", id)
	var cached model.Product
	if cache.GetJSON(ctx, cacheKey, &cached) {
		return c.JSON(http.StatusOK, cached)
	}

	product, err := repository.FindProduct(id)
	if err != nil {
		log.Warn("Product not found", zap.Uint("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	// Deleted images stay loaded for position bookkeeping but never
	// leave the service
	product.Images = product.ActiveImages()

	cache.SetJSON(ctx, cacheKey, product)
	return c.JSON(http.StatusOK, product)
}

// GetProductImages returns the product's active image projection: URLs
// in display order, the primary image, and a sized thumbnail of it
func GetProductImages(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := repository.FindProduct(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	thumbnail := ""
	primary := product.PrimaryImage()
	if primary != nil {
		thumbnail = assetstore.BuildURL(primary.AssetID, &assetstore.TransformOptions{Width: 300, Height: 300})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"urls":      product.ImageURLs(),
		"primary":   primary,
		"thumbnail": thumbnail,
	})
}

// UpdateProduct handles patching a product. The request is multipart:
// optional "name", "description", "price" fields, new "images" files
// appended after the existing ones, and repeated "remove_asset_ids"
// fields naming assets to drop. Store-side deletion is best-effort.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := repository.FindProduct(id)
	if err != nil {
		log.Warn("Product not found for update", zap.Uint("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	if name := c.FormValue("name"); name != "" {
		if len(name) < 3 || len(name) > 50 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be between 3 and 50 characters"})
		}
		product.Rename(name)
	}
	if description := c.FormValue("description"); description != "" {
		if len(description) > 255 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "description must be at most 255 characters"})
		}
		product.ChangeDescription(description)
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a non-negative decimal"})
		}
		product.ChangePrice(price)
	}

	form, formErr := c.MultipartForm()

	// New images continue the existing position sequence and never
	// steal the primary flag
	if formErr == nil && form != nil {
		for i, fh := range form.File["images"] {
			data, err := readFormFile(fh)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read image file"})
			}

			upload, err := assetstore.Upload(fh.Filename, data)
			if err != nil {
				log.Error("Image upload failed",
					zap.Uint("product_id", id),
					zap.Int("index", i),
					zap.Error(err))
				prometheus.RecordAssetStoreOperation("upload", "error")
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to upload image: " + err.Error()})
			}
			prometheus.RecordAssetStoreOperation("upload", "ok")

			altText := fmt.Sprintf("Image %d of %s", product.NextImagePosition(), product.Name)
			image := product.AddImage(upload.URL, upload.AssetID, altText, 0, false)
			image.StampCreated(actor)
		}

		// Removals are keyed by asset id. A store-side failure is
		// logged and swallowed; the local detach proceeds regardless.
		for _, assetID := range form.Value["remove_asset_ids"] {
			if err := assetstore.Delete(assetID); err != nil {
				log.Error("Asset delete failed, continuing",
					zap.String("asset_id", assetID),
					zap.Error(err))
				prometheus.RecordAssetStoreOperation("delete", "error")
			} else {
				prometheus.RecordAssetStoreOperation("delete", "ok")
			}

			if removed := product.RemoveImage(assetID, actor); removed == nil {
				log.Warn("No active image with this asset id",
					zap.Uint("product_id", id),
					zap.String("asset_id", assetID))
			}
		}
	}

	product.StampUpdated(actor)
	if err := repository.SaveProduct(product); err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	cache.Invalidate(c.Request().Context(), productCachePattern)
	log.Info("Product updated successfully", zap.Uint("product_id", product.ID))
	prometheus.RecordCatalogOperation("product", "update")

	product.Images = product.ActiveImages()
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles soft-deleting a product. Deletion is refused
// while any active sale line references the product.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := repository.FindProduct(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	inSales, err := repository.IsProductInSales(id)
	if err != nil {
		log.Error("Failed to check sales for product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if inSales {
		log.Warn("Product is referenced by active sales", zap.Uint("product_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete product because it is associated with existing sales"})
	}

	product.SoftDelete(actor, time.Now().UTC())
	if err := repository.SaveProduct(product); err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}

	cache.Invalidate(c.Request().Context(), productCachePattern)
	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	prometheus.RecordCatalogOperation("product", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

// MoveProductStock handles increasing or decreasing product stock.
// Decreasing below zero is rejected and leaves the stock unchanged.
func MoveProductStock(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req StockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a decimal"})
	}

	product, err := repository.FindProduct(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	switch req.Operation {
	case "increase":
		err = product.IncreaseStock(quantity)
	case "decrease":
		err = product.DecreaseStock(quantity)
	}
	if err != nil {
		if errors.Is(err, model.ErrInsufficientStock) {
			log.Warn("Insufficient stock",
				zap.Uint("product_id", id),
				zap.String("requested", quantity.String()),
				zap.String("stock", product.Stock.String()))
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	product.StampUpdated(actor)
	if err := repository.SaveProduct(product); err != nil {
		log.Error("Failed to save stock movement", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update stock"})
	}

	cache.Invalidate(c.Request().Context(), productCachePattern)
	log.Info("Stock updated",
		zap.Uint("product_id", id),
		zap.String("operation", req.Operation),
		zap.String("stock", product.Stock.String()))
	prometheus.RecordCatalogOperation("product", "stock_"+req.Operation)
	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name,
		product.Stock.InexactFloat64())
	return c.JSON(http.StatusOK, product)
}
