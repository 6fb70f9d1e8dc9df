package main

import (
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/handler"
	mid "github.com/AGKL-Team/AGKL-Sales-backend/internal/middleware"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/assetstore"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/cache"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/database"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/identity"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/jwtutil"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/AGKL-Team/AGKL-Sales-backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting sales-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize external service clients
	identity.Initialize(&appConfig.Identity)
	log.Info("Identity provider client initialized",
		zap.String("base_url", appConfig.Identity.BaseURL))

	assetstore.Initialize(&appConfig.AssetStore)
	log.Info("Asset store client initialized",
		zap.String("cloud_name", appConfig.AssetStore.CloudName))

	// Cache is optional; a missing redis only disables read-through
	if err := cache.Initialize(&appConfig.Redis); err != nil {
		log.Warn("Catalog cache unavailable, continuing without it", zap.Error(err))
	} else if cache.Enabled() {
		log.Info("Catalog cache initialized", zap.String("addr", appConfig.Redis.Addr))
	}
	defer cache.Close()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Auth routes - signup/signin are public, the rest need a token
	auth := e.Group("/auth")
	auth.POST("/signup", handler.SignUp)
	auth.POST("/signin", handler.SignIn)
	auth.POST("/signout", handler.SignOut, mid.AuthMiddleware)
	auth.GET("/me", handler.Me, mid.AuthMiddleware)
	auth.PUT("/height", handler.UpdateHeight, mid.AuthMiddleware)

	// Brand API routes
	brandAPI := e.Group("/api/brands", mid.AuthMiddleware)
	brandAPI.GET("", handler.ListBrands)
	brandAPI.GET("/:id", handler.GetBrand)
	brandAPI.POST("", handler.CreateBrand)
	brandAPI.PUT("/:id", handler.UpdateBrand)
	brandAPI.DELETE("/:id", handler.DeleteBrand)
	brandAPI.POST("/:id/categories/:categoryId", handler.AssociateCategoryToBrand)

	// Category API routes
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware)
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.GET("/:id", handler.GetCategory)
	categoryAPI.POST("", handler.CreateCategory)
	categoryAPI.PUT("/:id", handler.UpdateCategory)
	categoryAPI.DELETE("/:id", handler.DeleteCategory)

	// Line API routes
	lineAPI := e.Group("/api/lines", mid.AuthMiddleware)
	lineAPI.GET("", handler.ListLines)
	lineAPI.GET("/:id", handler.GetLine)
	lineAPI.POST("", handler.CreateLine)
	lineAPI.PUT("/:id", handler.UpdateLine)
	lineAPI.DELETE("/:id", handler.DeleteLine)

	// Product API routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.GET("/:id/images", handler.GetProductImages)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)
	productAPI.POST("/:id/stock", handler.MoveProductStock)

	// Sale API routes
	saleAPI := e.Group("/api/sales", mid.AuthMiddleware)
	saleAPI.GET("", handler.ListSales)
	saleAPI.GET("/next-number", handler.GetNextSaleNumber)
	saleAPI.GET("/:id", handler.GetSale)
	saleAPI.POST("", handler.CreateSale)
	saleAPI.DELETE("/:id", handler.DeleteSale)

	// Customer API routes
	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", handler.ListCustomers)
	customerAPI.GET("/:id", handler.GetCustomer)
	customerAPI.POST("", handler.CreateCustomer)
	customerAPI.PUT("/:id", handler.UpdateCustomer)
	customerAPI.DELETE("/:id", handler.DeleteCustomer)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
