package ledger

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when an item id resolves to no row so
// HTTP handlers can respond with 404.
var ErrItemNotFound = errors.New("item not found")

// ErrInsufficientStock is returned when a sale asks for more units than
// the item has on hand. Nothing is mutated when it is returned.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrNoSalesToUndo signals an empty ledger on undo. It is an empty
// state, not a failure; handlers should not map it to an error status.
var ErrNoSalesToUndo = errors.New("no sales to undo")

// ValidationError rejects an input before any mutation is applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
