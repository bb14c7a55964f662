package model

import (
	"time"
)

// Item represents one stocked clothing line. Price is the unit cost
// basis paid to the supplier, not the selling price.
type Item struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	Size        string    `json:"size" gorm:"type:varchar(50)"`
	Description string    `json:"description" gorm:"type:text"`
	Quantity    int       `json:"quantity" gorm:"default:0"`
	Price       float64   `json:"price"`
	Supplier    string    `json:"supplier" gorm:"type:varchar(255)"`
	EntryDate   string    `json:"entry_date" gorm:"type:varchar(10)"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockMovement is one entry of the stock audit trail: every change to
// an Item's quantity leaves a movement row. Clearing the sales ledger
// does not clear movements, so they remain the only record of cleared
// sales.
type StockMovement struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ItemID    uint      `json:"item_id" gorm:"index"`
	Type      string    `json:"type" gorm:"type:varchar(10);not null"` // "in" or "out"
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}
