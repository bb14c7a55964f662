package handler

import (
	"net/http"
	"strconv"

	"inventory-service/internal/ledger"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ItemRequest defines the structure for item creation/update requests
type ItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Size        string  `json:"size"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Supplier    string  `json:"supplier"`
	EntryDate   string  `json:"entry_date"`
	Notes       string  `json:"notes"`
}

func (r *ItemRequest) toInput() ledger.ItemInput {
	return ledger.ItemInput{
		Name:        r.Name,
		Category:    r.Category,
		Size:        r.Size,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Supplier:    r.Supplier,
		EntryDate:   r.EntryDate,
		Notes:       r.Notes,
	}
}

// ListItems handles retrieving the full catalog
func ListItems(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing catalog items")

	eng := ledger.New(database.GetDB())
	items, err := eng.ListItems()
	if err != nil {
		log.Error("Failed to list items", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve items",
		})
	}

	prometheus.RecordItemOperation("list")
	log.Info("Items retrieved successfully", zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, items)
}

// GetItem handles retrieving a single item by ID
func GetItem(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	log.Info("Getting item by ID", zap.Uint("item_id", id))

	eng := ledger.New(database.GetDB())
	item, err := eng.GetItem(id)
	if err != nil {
		log.Warn("Item lookup failed", zap.Uint("item_id", id), zap.Error(err))
		return writeLedgerError(c, err, "Failed to retrieve item")
	}

	prometheus.RecordItemOperation("get")
	return c.JSON(http.StatusOK, item)
}

// CreateItem handles adding a catalog item. A candidate matching an
// existing item's name, description and size is folded into that row
// (quantity added, other fields kept), answered with 200 instead of 201.
func CreateItem(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new item")

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	eng := ledger.New(database.GetDB())
	item, merged, err := eng.AddItem(req.toInput())
	if err != nil {
		log.Error("Failed to create item",
			zap.String("name", req.Name),
			zap.Error(err))
		return writeLedgerError(c, err, "Failed to create item")
	}

	prometheus.RecordItemOperation("create")
	prometheus.UpdateItemStock(strconv.FormatUint(uint64(item.ID), 10), item.Name, item.Category, float64(item.Quantity))

	if merged {
		log.Info("Item merged into existing row",
			zap.Uint("item_id", item.ID),
			zap.String("name", item.Name),
			zap.Int("quantity", item.Quantity))
		return c.JSON(http.StatusOK, item)
	}

	log.Info("Item created successfully",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name))
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles replacing every field of an existing item
func UpdateItem(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	log.Info("Updating item", zap.Uint("item_id", id))

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("item_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	eng := ledger.New(database.GetDB())
	item, err := eng.UpdateItem(id, req.toInput())
	if err != nil {
		log.Error("Failed to update item", zap.Uint("item_id", id), zap.Error(err))
		return writeLedgerError(c, err, "Failed to update item")
	}

	prometheus.RecordItemOperation("update")
	prometheus.UpdateItemStock(strconv.FormatUint(uint64(item.ID), 10), item.Name, item.Category, float64(item.Quantity))

	log.Info("Item updated successfully",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Int("quantity", item.Quantity))
	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles removing an item. Historical sales referencing it
// are left in place with a dangling item_id.
func DeleteItem(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item id"})
	}
	log.Info("Deleting item", zap.Uint("item_id", id))

	eng := ledger.New(database.GetDB())
	if err := eng.DeleteItem(id); err != nil {
		log.Warn("Failed to delete item", zap.Uint("item_id", id), zap.Error(err))
		return writeLedgerError(c, err, "Failed to delete item")
	}

	prometheus.RecordItemOperation("delete")
	log.Info("Item deleted successfully", zap.Uint("item_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item deleted successfully",
	})
}

// ListMovements handles retrieving the stock movement audit trail,
// optionally filtered by item.
func ListMovements(c echo.Context) error {
	log := logger.FromContext(c)

	var itemID uint
	if raw := c.QueryParam("item_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid item_id parameter", zap.String("value", raw), zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item_id parameter"})
		}
		itemID = uint(parsed)
	}

	eng := ledger.New(database.GetDB())
	movements, err := eng.ListMovements(itemID)
	if err != nil {
		log.Error("Failed to list stock movements", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve stock movements",
		})
	}

	log.Info("Stock movements retrieved", zap.Int("count", len(movements)))
	return c.JSON(http.StatusOK, movements)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
