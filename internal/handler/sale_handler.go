package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/ledger"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// SaleRequest defines the structure for sale recording requests.
// TotalAmount and Profit override the derived values when present.
type SaleRequest struct {
	Date          string   `json:"date"`
	ItemID        uint     `json:"item_id"`
	Quantity      int      `json:"quantity"`
	UnitPrice     float64  `json:"unit_price"`
	PaymentMethod string   `json:"payment_method"`
	TotalAmount   *float64 `json:"total_amount"`
	Profit        *float64 `json:"profit"`
	ExpenseNotes  string   `json:"expense_notes"`
}

// RecordSale handles recording a sale against an item
func RecordSale(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Recording sale")

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			log.Warn("Invalid sale date", zap.String("date", req.Date), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
		}
	}

	eng := ledger.New(database.GetDB())
	sale, err := eng.RecordSale(ledger.SaleInput{
		Date:          date,
		ItemID:        req.ItemID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   req.TotalAmount,
		Profit:        req.Profit,
		ExpenseNotes:  req.ExpenseNotes,
	})
	if err != nil {
		log.Warn("Failed to record sale",
			zap.Uint("item_id", req.ItemID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return writeLedgerError(c, err, "Failed to record sale")
	}

	prometheus.RecordSaleOperation("record")
	if sale.Profit != nil {
		prometheus.RecordSaleAmounts(sale.TotalAmount, *sale.Profit)
	} else {
		prometheus.RecordSaleAmounts(sale.TotalAmount, 0)
	}
	updateStockGauge(eng, sale.ItemID)

	log.Info("Sale recorded successfully",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("item_id", sale.ItemID),
		zap.Int("quantity", sale.Quantity),
		zap.Float64("total_amount", sale.TotalAmount))
	return c.JSON(http.StatusCreated, sale)
}

// ListSales handles retrieving sales in an optional inclusive date
// window, joined with each item's name.
func ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	dr, err := parseDateRange(c)
	if err != nil {
		log.Warn("Invalid date range", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid date range, expected YYYY-MM-DD",
		})
	}

	eng := ledger.New(database.GetDB())
	sales, err := eng.ListSales(dr)
	if err != nil {
		log.Error("Failed to list sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sales",
		})
	}

	prometheus.RecordSaleOperation("list")
	log.Info("Sales retrieved successfully", zap.Int("count", len(sales)))
	return c.JSON(http.StatusOK, sales)
}

// UndoLastSale handles reversing the most recently recorded sale. An
// empty ledger is a legitimate state and answers 200 with undone=false.
func UndoLastSale(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Undoing last sale")

	eng := ledger.New(database.GetDB())
	sale, err := eng.UndoLastSale()
	if errors.Is(err, ledger.ErrNoSalesToUndo) {
		log.Info("No sales to undo")
		return c.JSON(http.StatusOK, echo.Map{
			"undone":  false,
			"message": "No sales to undo",
		})
	}
	if err != nil {
		log.Error("Failed to undo last sale", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to undo last sale",
		})
	}

	prometheus.RecordSaleOperation("undo")
	updateStockGauge(eng, sale.ItemID)
	log.Info("Last sale undone",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("item_id", sale.ItemID),
		zap.Int("quantity", sale.Quantity))
	return c.JSON(http.StatusOK, echo.Map{
		"undone": true,
		"sale":   sale,
	})
}

// ClearAllSales handles wiping the sales ledger. Stock is not restored;
// the caller is expected to have confirmed this explicitly.
func ClearAllSales(c echo.Context) error {
	log := logger.FromContext(c)
	log.Warn("Clearing all sales")

	eng := ledger.New(database.GetDB())
	deleted, err := eng.ClearAllSales()
	if err != nil {
		log.Error("Failed to clear sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to clear sales",
		})
	}

	prometheus.RecordSaleOperation("clear")
	log.Warn("All sales cleared", zap.Int64("deleted", deleted))
	return c.JSON(http.StatusOK, echo.Map{
		"deleted": deleted,
	})
}

// updateStockGauge refreshes the exported stock level for one item.
// Best effort: a deleted item simply stops being reported.
func updateStockGauge(eng *ledger.Ledger, itemID uint) {
	if item, err := eng.GetItem(itemID); err == nil {
		prometheus.UpdateItemStock(strconv.FormatUint(uint64(item.ID), 10),
			item.Name, item.Category, float64(item.Quantity))
	}
}

// parseDateRange reads optional start/end query parameters. Both bounds
// are inclusive calendar dates.
func parseDateRange(c echo.Context) (ledger.DateRange, error) {
	var dr ledger.DateRange
	if raw := c.QueryParam("start"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return ledger.DateRange{}, err
		}
		dr.Start = &t
	}
	if raw := c.QueryParam("end"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return ledger.DateRange{}, err
		}
		dr.End = &t
	}
	return dr, nil
}
