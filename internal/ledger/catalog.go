package ledger

import (
	"errors"
	"strings"

	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// ItemInput carries every Item field except the id.
type ItemInput struct {
	Name        string
	Category    string
	Size        string
	Description string
	Quantity    int
	Price       float64
	Supplier    string
	EntryDate   string
	Notes       string
}

func (in *ItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("name", "required")
	}
	if in.Quantity < 0 {
		return invalidf("quantity", "must not be negative")
	}
	if in.Price < 0 {
		return invalidf("price", "must not be negative")
	}
	return nil
}

// ListItems returns every catalog item in primary-key order.
func (l *Ledger) ListItems() ([]model.Item, error) {
	var items []model.Item
	if err := l.db.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns the item with the given id.
func (l *Ledger) GetItem(id uint) (model.Item, error) {
	var item model.Item
	err := l.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, ErrItemNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// AddItem inserts a catalog item, folding duplicates: when an existing
// item has the same name, description and size, only its quantity grows
// by the candidate's quantity and every other candidate field is
// discarded in favor of the existing row. The returned flag reports
// whether the candidate was merged into an existing row.
func (l *Ledger) AddItem(in ItemInput) (model.Item, bool, error) {
	if err := in.validate(); err != nil {
		return model.Item{}, false, err
	}

	var item model.Item
	merged := false
	err := l.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ? AND description = ? AND size = ?", in.Name, in.Description, in.Size).
			First(&item).Error
		switch {
		case err == nil:
			merged = true
			item.Quantity += in.Quantity
			if err := tx.Model(&model.Item{}).Where("id = ?", item.ID).
				Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
			if in.Quantity > 0 {
				return tx.Create(&model.StockMovement{
					ItemID:   item.ID,
					Type:     "in",
					Quantity: in.Quantity,
					Reason:   "Restocked",
				}).Error
			}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = model.Item{
				Name:        in.Name,
				Category:    in.Category,
				Size:        in.Size,
				Description: in.Description,
				Quantity:    in.Quantity,
				Price:       in.Price,
				Supplier:    in.Supplier,
				EntryDate:   in.EntryDate,
				Notes:       in.Notes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if in.Quantity > 0 {
				return tx.Create(&model.StockMovement{
					ItemID:   item.ID,
					Type:     "in",
					Quantity: in.Quantity,
					Reason:   "Initial stock",
				}).Error
			}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return model.Item{}, false, err
	}
	return item, merged, nil
}

// UpdateItem replaces every field of the item. A quantity change is
// logged as a manual adjustment movement.
func (l *Ledger) UpdateItem(id uint, in ItemInput) (model.Item, error) {
	if err := in.validate(); err != nil {
		return model.Item{}, err
	}

	var item model.Item
	err := l.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		delta := in.Quantity - item.Quantity

		item.Name = in.Name
		item.Category = in.Category
		item.Size = in.Size
		item.Description = in.Description
		item.Quantity = in.Quantity
		item.Price = in.Price
		item.Supplier = in.Supplier
		item.EntryDate = in.EntryDate
		item.Notes = in.Notes
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		if delta != 0 {
			mv := model.StockMovement{ItemID: item.ID, Reason: "Manual adjustment"}
			if delta > 0 {
				mv.Type, mv.Quantity = "in", delta
			} else {
				mv.Type, mv.Quantity = "out", -delta
			}
			return tx.Create(&mv).Error
		}
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// DeleteItem removes the item row unconditionally. Sales that reference
// it keep their item_id; listings join to a blank name from then on.
func (l *Ledger) DeleteItem(id uint) error {
	res := l.db.Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ListMovements returns the stock audit trail, newest first, optionally
// narrowed to one item.
func (l *Ledger) ListMovements(itemID uint) ([]model.StockMovement, error) {
	q := l.db.Order("id DESC")
	if itemID != 0 {
		q = q.Where("item_id = ?", itemID)
	}
	var movements []model.StockMovement
	if err := q.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
