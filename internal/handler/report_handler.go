package handler

import (
	"net/http"

	"inventory-service/internal/ledger"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetSummary handles period-bucketed revenue/profit rollups. The period
// query parameter selects daily (default), weekly or monthly buckets.
func GetSummary(c echo.Context) error {
	log := logger.FromContext(c)

	period, err := ledger.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		log.Warn("Invalid period parameter", zap.String("period", c.QueryParam("period")))
		return writeLedgerError(c, err, "Failed to summarize sales")
	}

	dr, err := parseDateRange(c)
	if err != nil {
		log.Warn("Invalid date range", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid date range, expected YYYY-MM-DD",
		})
	}

	eng := ledger.New(database.GetDB())
	buckets, err := eng.Summarize(period, dr)
	if err != nil {
		log.Error("Failed to summarize sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to summarize sales",
		})
	}

	prometheus.RecordSaleOperation("summarize")
	log.Info("Summary computed",
		zap.String("period", string(period)),
		zap.Int("buckets", len(buckets)))
	return c.JSON(http.StatusOK, echo.Map{
		"period":  period,
		"buckets": buckets,
	})
}

// GetTotals handles the overall revenue/profit/margin figures for a
// date window.
func GetTotals(c echo.Context) error {
	log := logger.FromContext(c)

	dr, err := parseDateRange(c)
	if err != nil {
		log.Warn("Invalid date range", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid date range, expected YYYY-MM-DD",
		})
	}

	eng := ledger.New(database.GetDB())
	totals, err := eng.Totals(dr)
	if err != nil {
		log.Error("Failed to compute totals", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute totals",
		})
	}

	prometheus.RecordSaleOperation("totals")
	log.Info("Totals computed",
		zap.Int("count", totals.Count),
		zap.Float64("total_sales", totals.TotalSales))
	return c.JSON(http.StatusOK, totals)
}
