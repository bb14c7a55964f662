// Package ledger is the inventory–sales engine: it owns item stock
// levels, the sale history drawn against them, and the reports derived
// from that history. All stock mutations go through this package so the
// quantity-never-negative invariant is enforced in one place.
package ledger

import (
	"time"

	"gorm.io/gorm"
)

// Ledger runs engine operations against a database handle. Handlers
// build one per request; each operation is a self-contained unit of
// work against the handle it was built with.
type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// DateRange is an optional inclusive [Start, End] window over sale
// dates. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// scope narrows a sales query to the window. Column is qualified by the
// caller since the range is applied to both plain and joined queries.
func (r DateRange) scope(q *gorm.DB, column string) *gorm.DB {
	if r.Start != nil {
		q = q.Where(column+" >= ?", *r.Start)
	}
	if r.End != nil {
		q = q.Where(column+" <= ?", *r.End)
	}
	return q
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}
