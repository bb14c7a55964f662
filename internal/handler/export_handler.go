package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/ledger"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ExportSnapshot hands a sync collaborator a read-only view of the
// ledger: the full catalog plus the windowed sales joined with item
// names. How the snapshot ends up in a spreadsheet is the collaborator's
// business.
func ExportSnapshot(c echo.Context) error {
	log := logger.FromContext(c)

	dr, err := parseDateRange(c)
	if err != nil {
		log.Warn("Invalid date range", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid date range, expected YYYY-MM-DD",
		})
	}

	eng := ledger.New(database.GetDB())
	items, err := eng.ListItems()
	if err != nil {
		log.Error("Failed to read items for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to build snapshot",
		})
	}
	sales, err := eng.ListSales(dr)
	if err != nil {
		log.Error("Failed to read sales for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to build snapshot",
		})
	}

	log.Info("Snapshot exported",
		zap.Int("items", len(items)),
		zap.Int("sales", len(sales)))
	return c.JSON(http.StatusOK, echo.Map{
		"generated_at": time.Now().UTC(),
		"items":        items,
		"sales":        sales,
	})
}
