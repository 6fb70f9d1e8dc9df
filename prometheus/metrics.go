package prometheus

import (
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog metrics (brands, categories, lines, products)
	CatalogOperationsCounter prometheus.CounterVec

	// Sale metrics
	SaleOperationsCounter prometheus.CounterVec

	// Customer metrics
	CustomerOperationsCounter prometheus.CounterVec

	// Asset store collaborator metrics
	AssetStoreOperationsCounter prometheus.CounterVec

	// Identity provider collaborator metrics
	AuthOperationsCounter prometheus.CounterVec

	// Inventory metrics
	ProductInventoryGauge prometheus.GaugeVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	CatalogOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"entity", "operation"},
	)

	SaleOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sale_operations_total",
			Help: "Total number of sale operations",
		},
		[]string{"operation"},
	)

	CustomerOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_customer_operations_total",
			Help: "Total number of customer operations",
		},
		[]string{"operation"},
	)

	AssetStoreOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_asset_store_operations_total",
			Help: "Total number of asset store calls",
		},
		[]string{"operation", "status"},
	)

	AuthOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_operations_total",
			Help: "Total number of identity provider calls",
		},
		[]string{"operation", "status"},
	)

	ProductInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_inventory",
			Help: "Current stock level for products",
		},
		[]string{"product_id", "product_name"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordCatalogOperation increments the counter for catalog operations
func RecordCatalogOperation(entity, operation string) {
	CatalogOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordSaleOperation increments the counter for sale operations
func RecordSaleOperation(operation string) {
	SaleOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCustomerOperation increments the counter for customer operations
func RecordCustomerOperation(operation string) {
	CustomerOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAssetStoreOperation increments the counter for asset store calls
func RecordAssetStoreOperation(operation, status string) {
	AssetStoreOperationsCounter.WithLabelValues(operation, status).Inc()
}

// RecordAuthOperation increments the counter for identity provider calls
func RecordAuthOperation(operation, status string) {
	AuthOperationsCounter.WithLabelValues(operation, status).Inc()
}

// UpdateProductInventory updates the gauge for product stock
func UpdateProductInventory(productID string, productName string, stock float64) {
	ProductInventoryGauge.WithLabelValues(productID, productName).Set(stock)
}
