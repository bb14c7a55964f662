package model

import (
	"time"
)

// Sale records one completed transaction against one Item. ItemID is a
// non-owning reference: the item may since have been deleted, in which
// case the reference dangles (tolerated, see SaleRecord.ItemName).
// Profit is nullable because historical rows may carry no profit; a
// nil profit counts as zero in every aggregate.
type Sale struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Date          time.Time `json:"date" gorm:"index;not null"`
	ItemID        uint      `json:"item_id" gorm:"index"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	UnitPrice     float64   `json:"unit_price" gorm:"not null"`
	TotalAmount   float64   `json:"total_amount" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(100);not null"`
	Profit        *float64  `json:"profit"`
	ExpenseNotes  string    `json:"expense_notes" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaleRecord is a Sale joined with its item's name for display and
// export. ItemName is blank when the item has been deleted.
type SaleRecord struct {
	ID            uint      `json:"id"`
	Date          time.Time `json:"date"`
	ItemID        uint      `json:"item_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	Profit        *float64  `json:"profit"`
	ExpenseNotes  string    `json:"expense_notes"`
}

// SummaryBucket is one reporting bucket: all sales whose date truncates
// to Period, with summed revenue and profit.
type SummaryBucket struct {
	Period      string  `json:"period"`
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
}

// SalesTotals are the overall figures for a date window.
type SalesTotals struct {
	Count       int     `json:"count"`
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
	Margin      float64 `json:"margin"`
}
