package prometheus

import (
	"time"

	"inventory-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog metrics
	ItemOperationsCounter prometheus.CounterVec

	// Ledger metrics
	SaleOperationsCounter prometheus.CounterVec

	// Stock level per item
	ItemStockGauge prometheus.GaugeVec

	// Running revenue/profit recorded through the ledger
	SalesRevenueCounter prometheus.Counter
	SalesProfitCounter  prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Catalog metrics
	ItemOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_item_operations_total",
			Help: "Total number of catalog item operations",
		},
		[]string{"operation"},
	)

	// Ledger metrics
	SaleOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sale_operations_total",
			Help: "Total number of sales ledger operations",
		},
		[]string{"operation"},
	)

	// Stock level per item
	ItemStockGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_item_stock",
			Help: "Current stock level for items",
		},
		[]string{"item_id", "item_name", "category"},
	)

	SalesRevenueCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_revenue_total",
			Help: "Total revenue recorded through the ledger",
		},
	)

	SalesProfitCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_profit_total",
			Help: "Total non-negative profit recorded through the ledger",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordItemOperation increments the counter for catalog operations
func RecordItemOperation(operation string) {
	ItemOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordSaleOperation increments the counter for ledger operations
func RecordSaleOperation(operation string) {
	SaleOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateItemStock updates the gauge for an item's stock level
func UpdateItemStock(itemID string, itemName string, category string, count float64) {
	ItemStockGauge.WithLabelValues(itemID, itemName, category).Set(count)
}

// RecordSaleAmounts adds a sale's revenue and profit to the running
// totals. Prometheus counters cannot go down, so a loss is skipped.
func RecordSaleAmounts(revenue, profit float64) {
	if revenue > 0 {
		SalesRevenueCounter.Add(revenue)
	}
	if profit > 0 {
		SalesProfitCounter.Add(profit)
	}
}
