package handler

import (
	"errors"
	"net/http"

	"inventory-service/internal/ledger"

	"github.com/labstack/echo/v4"
)

// writeLedgerError maps typed engine failures to HTTP responses.
// ErrNoSalesToUndo is handled by the undo handler itself since it is an
// empty state, not a failure.
func writeLedgerError(c echo.Context, err error, fallback string) error {
	var verr *ledger.ValidationError
	switch {
	case errors.Is(err, ledger.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
	case errors.Is(err, ledger.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Insufficient stock for this sale"})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}
