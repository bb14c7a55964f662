package ledger

import (
	"errors"
	"strings"
	"time"

	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// SaleInput carries everything needed to record a sale. TotalAmount and
// Profit are optional overrides; when nil they are derived from the
// quantity, the selling price and the item's cost basis.
type SaleInput struct {
	Date          time.Time
	ItemID        uint
	Quantity      int
	UnitPrice     float64
	PaymentMethod string
	TotalAmount   *float64
	Profit        *float64
	ExpenseNotes  string
}

func (in *SaleInput) validate() error {
	if in.ItemID == 0 {
		return invalidf("item_id", "required")
	}
	if in.Date.IsZero() {
		return invalidf("date", "required")
	}
	if in.Quantity <= 0 {
		return invalidf("quantity", "must be positive")
	}
	if in.UnitPrice <= 0 {
		return invalidf("unit_price", "must be positive")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return invalidf("payment_method", "required")
	}
	return nil
}

// RecordSale inserts a sale and decrements the item's stock in one
// transaction. The stock check happens before anything is written, so a
// rejected sale leaves both tables untouched.
func (l *Ledger) RecordSale(in SaleInput) (model.Sale, error) {
	if err := in.validate(); err != nil {
		return model.Sale{}, err
	}

	var sale model.Sale
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var item model.Item
		err := tx.First(&item, in.ItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		if in.Quantity > item.Quantity {
			return ErrInsufficientStock
		}

		total := float64(in.Quantity) * in.UnitPrice
		if in.TotalAmount != nil {
			total = *in.TotalAmount
		}
		// Cost basis is read at sale time; a later price change on the
		// item does not rewrite past profits.
		profit := (in.UnitPrice - item.Price) * float64(in.Quantity)
		if in.Profit != nil {
			profit = *in.Profit
		}

		sale = model.Sale{
			Date:          in.Date,
			ItemID:        in.ItemID,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			TotalAmount:   total,
			PaymentMethod: in.PaymentMethod,
			Profit:        &profit,
			ExpenseNotes:  in.ExpenseNotes,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Item{}).Where("id = ?", item.ID).
			Update("quantity", gorm.Expr("quantity - ?", in.Quantity)).Error; err != nil {
			return err
		}

		return tx.Create(&model.StockMovement{
			ItemID:   item.ID,
			Type:     "out",
			Quantity: in.Quantity,
			Reason:   "Sold",
		}).Error
	})
	if err != nil {
		return model.Sale{}, err
	}
	return sale, nil
}

// ListSales returns sales in the window joined with their item's name,
// newest date first, ties broken by newest id. Sales whose item was
// deleted come back with a blank name.
func (l *Ledger) ListSales(r DateRange) ([]model.SaleRecord, error) {
	q := l.db.Table("sales").
		Select("sales.id, sales.date, sales.item_id, COALESCE(items.name, '') AS item_name, " +
			"sales.quantity, sales.unit_price, sales.total_amount, sales.payment_method, " +
			"sales.profit, sales.expense_notes").
		Joins("LEFT JOIN items ON items.id = sales.item_id")
	q = r.scope(q, "sales.date")

	var records []model.SaleRecord
	if err := q.Order("sales.date DESC, sales.id DESC").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// UndoLastSale reverses the most recently created sale (highest id, not
// latest date — backdated sales do not change which sale is "last").
// Stock is restored and the sale row removed in one transaction. When
// the sale's item has been deleted the restore is skipped and the sale
// is still removed. Returns ErrNoSalesToUndo on an empty ledger.
func (l *Ledger) UndoLastSale() (model.Sale, error) {
	var sale model.Sale
	err := l.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Order("id DESC").First(&sale).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSalesToUndo
		}
		if err != nil {
			return err
		}

		var item model.Item
		err = tx.First(&item, sale.ItemID).Error
		switch {
		case err == nil:
			if err := tx.Model(&model.Item{}).Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", sale.Quantity)).Error; err != nil {
				return err
			}
			if err := tx.Create(&model.StockMovement{
				ItemID:   item.ID,
				Type:     "in",
				Quantity: sale.Quantity,
				Reason:   "Sale reversed",
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Item deleted after the sale: nothing to restore.
		default:
			return err
		}

		return tx.Delete(&model.Sale{}, sale.ID).Error
	})
	if err != nil {
		return model.Sale{}, err
	}
	return sale, nil
}

// ClearAllSales deletes every sale row and returns how many went. Stock
// is NOT restored: this wipes the history for re-seeding, it is not a
// bulk undo. Movements are kept as the remaining audit trail.
func (l *Ledger) ClearAllSales() (int64, error) {
	res := l.db.Where("1 = 1").Delete(&model.Sale{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
