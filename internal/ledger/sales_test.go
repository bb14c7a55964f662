package ledger

import (
	"errors"
	"testing"

	"inventory-service/internal/model"
)

func TestRecordSaleValidation(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "T-shirt", 8, 10.00)
	day := date(t, "2024-01-05")

	tests := []struct {
		name  string
		input SaleInput
	}{
		{"missing item", SaleInput{Date: day, Quantity: 1, UnitPrice: 1, PaymentMethod: "Cash"}},
		{"missing date", SaleInput{ItemID: item.ID, Quantity: 1, UnitPrice: 1, PaymentMethod: "Cash"}},
		{"zero quantity", SaleInput{ItemID: item.ID, Date: day, Quantity: 0, UnitPrice: 1, PaymentMethod: "Cash"}},
		{"zero price", SaleInput{ItemID: item.ID, Date: day, Quantity: 1, PaymentMethod: "Cash"}},
		{"missing payment method", SaleInput{ItemID: item.ID, Date: day, Quantity: 1, UnitPrice: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.RecordSale(tt.input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	// Nothing above may have touched stock.
	got, _ := l.GetItem(item.ID)
	if got.Quantity != 8 {
		t.Fatalf("stock changed by rejected input: %d", got.Quantity)
	}
}

func TestRecordSaleDerivesTotalsAndDecrementsStock(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "T-shirt", 8, 10.00)

	sale, err := l.RecordSale(SaleInput{
		Date:          date(t, "2024-01-05"),
		ItemID:        item.ID,
		Quantity:      2,
		UnitPrice:     15.00,
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sale.TotalAmount != 30.00 {
		t.Fatalf("total = %v, want 30.00", sale.TotalAmount)
	}
	if sale.Profit == nil || *sale.Profit != 10.00 {
		t.Fatalf("profit = %v, want 10.00", sale.Profit)
	}

	got, _ := l.GetItem(item.ID)
	if got.Quantity != 6 {
		t.Fatalf("stock = %d, want 6", got.Quantity)
	}

	movements, _ := l.ListMovements(item.ID)
	if len(movements) != 1 || movements[0].Type != "out" || movements[0].Quantity != 2 {
		t.Fatalf("expected one 'out' movement of 2, got %+v", movements)
	}
}

func TestRecordSaleOverrides(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "Jeans", 5, 20.00)

	total := 100.00
	profit := -3.50
	sale, err := l.RecordSale(SaleInput{
		Date:          date(t, "2024-02-01"),
		ItemID:        item.ID,
		Quantity:      1,
		UnitPrice:     45.00,
		PaymentMethod: "Credit Card",
		TotalAmount:   &total,
		Profit:        &profit,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sale.TotalAmount != 100.00 {
		t.Fatalf("override total lost: %v", sale.TotalAmount)
	}
	if sale.Profit == nil || *sale.Profit != -3.50 {
		t.Fatalf("override profit lost: %v", sale.Profit)
	}
}

func TestRecordSaleLossMakesNegativeProfit(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "Jacket", 3, 60.00)

	sale, err := l.RecordSale(SaleInput{
		Date:          date(t, "2024-02-02"),
		ItemID:        item.ID,
		Quantity:      2,
		UnitPrice:     50.00,
		PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sale.Profit == nil || *sale.Profit != -20.00 {
		t.Fatalf("profit = %v, want -20.00", sale.Profit)
	}
}

func TestRecordSaleUnknownItem(t *testing.T) {
	l := New(openTestDB(t))
	_, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-01-05"), ItemID: 77, Quantity: 1,
		UnitPrice: 5, PaymentMethod: "Cash",
	})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRecordSaleInsufficientStockLeavesNoTrace(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "T-shirt", 3, 10.00)

	_, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-01-05"), ItemID: item.ID, Quantity: 4,
		UnitPrice: 15, PaymentMethod: "Cash",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	got, _ := l.GetItem(item.ID)
	if got.Quantity != 3 {
		t.Fatalf("stock mutated by failed sale: %d", got.Quantity)
	}
	var sales int64
	db.Model(&model.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sale row persisted despite failure")
	}
	var movements int64
	db.Model(&model.StockMovement{}).Count(&movements)
	if movements != 0 {
		t.Fatalf("movement persisted despite failure")
	}
}

func TestUndoLastSaleRoundTrip(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "T-shirt", 8, 10.00)

	if _, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-01-05"), ItemID: item.ID, Quantity: 2,
		UnitPrice: 15, PaymentMethod: "Cash",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	undone, err := l.UndoLastSale()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.Quantity != 2 {
		t.Fatalf("undone wrong sale: %+v", undone)
	}

	got, _ := l.GetItem(item.ID)
	if got.Quantity != 8 {
		t.Fatalf("stock = %d after round trip, want 8", got.Quantity)
	}
	var sales int64
	db.Model(&model.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sale row still present after undo")
	}
}

func TestUndoLastSalePicksHighestID(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "T-shirt", 10, 10.00)

	// The second sale is backdated: creation order, not the sale date,
	// decides which one undo reverses.
	if _, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-03-10"), ItemID: item.ID, Quantity: 1,
		UnitPrice: 15, PaymentMethod: "Cash",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	backdated, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-01-01"), ItemID: item.ID, Quantity: 3,
		UnitPrice: 15, PaymentMethod: "Cash",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	undone, err := l.UndoLastSale()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.ID != backdated.ID {
		t.Fatalf("undid sale %d, want most recently created %d", undone.ID, backdated.ID)
	}
	got, _ := l.GetItem(item.ID)
	if got.Quantity != 9 {
		t.Fatalf("stock = %d, want 9", got.Quantity)
	}
}

func TestUndoLastSaleEmptyLedger(t *testing.T) {
	l := New(openTestDB(t))
	if _, err := l.UndoLastSale(); !errors.Is(err, ErrNoSalesToUndo) {
		t.Fatalf("expected ErrNoSalesToUndo, got %v", err)
	}
}

func TestUndoLastSaleDeletedItem(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "Jacket", 3, 60.00)

	if _, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-01-05"), ItemID: item.ID, Quantity: 1,
		UnitPrice: 80, PaymentMethod: "Cash",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Restore target is gone: the undo still removes the sale.
	if _, err := l.UndoLastSale(); err != nil {
		t.Fatalf("undo with deleted item: %v", err)
	}
	var sales int64
	db.Model(&model.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sale row still present")
	}
}

func TestClearAllSalesDoesNotRestoreStock(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "T-shirt", 8, 10.00)

	for i := 0; i < 2; i++ {
		if _, err := l.RecordSale(SaleInput{
			Date: date(t, "2024-01-05"), ItemID: item.ID, Quantity: 2,
			UnitPrice: 15, PaymentMethod: "Cash",
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	deleted, err := l.ClearAllSales()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	got, _ := l.GetItem(item.ID)
	if got.Quantity != 4 {
		t.Fatalf("clear must not restore stock, got %d", got.Quantity)
	}

	// Clearing wipes sales only; the audit trail survives.
	movements, _ := l.ListMovements(item.ID)
	if len(movements) != 2 {
		t.Fatalf("movements lost on clear: %+v", movements)
	}

	// And with the ledger now empty, undo reports the empty state.
	if _, err := l.UndoLastSale(); !errors.Is(err, ErrNoSalesToUndo) {
		t.Fatalf("expected ErrNoSalesToUndo after clear, got %v", err)
	}
}

func TestListSalesJoinOrderAndWindow(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	shirt := seedItem(t, db, "T-shirt", 10, 10.00)
	jacket := seedItem(t, db, "Jacket", 5, 60.00)

	mustRecord := func(day string, item model.Item, qty int) model.Sale {
		s, err := l.RecordSale(SaleInput{
			Date: date(t, day), ItemID: item.ID, Quantity: qty,
			UnitPrice: 15, PaymentMethod: "Cash",
		})
		if err != nil {
			t.Fatalf("record %s: %v", day, err)
		}
		return s
	}
	mustRecord("2024-01-10", shirt, 1)
	onSame1 := mustRecord("2024-01-20", jacket, 1)
	onSame2 := mustRecord("2024-01-20", shirt, 2)
	mustRecord("2024-02-05", shirt, 1)

	records, err := l.ListSales(DateRange{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].Date.Format("2006-01-02") != "2024-02-05" {
		t.Fatalf("not date-descending: %+v", records[0])
	}
	// Same-date tie breaks by newest insertion first.
	if records[1].ID != onSame2.ID || records[2].ID != onSame1.ID {
		t.Fatalf("tie not broken by id desc: %d then %d", records[1].ID, records[2].ID)
	}
	if records[1].ItemName != "T-shirt" || records[2].ItemName != "Jacket" {
		t.Fatalf("join names wrong: %q, %q", records[1].ItemName, records[2].ItemName)
	}

	start := date(t, "2024-01-15")
	end := date(t, "2024-01-31")
	windowed, err := l.ListSales(DateRange{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("list windowed: %v", err)
	}
	if len(windowed) != 2 {
		t.Fatalf("expected 2 records in window, got %d", len(windowed))
	}
}

func TestListSalesToleratesDeletedItem(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	item := seedItem(t, db, "Jacket", 5, 60.00)

	if _, err := l.RecordSale(SaleInput{
		Date: date(t, "2024-01-05"), ItemID: item.ID, Quantity: 1,
		UnitPrice: 80, PaymentMethod: "Cash",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	records, err := l.ListSales(DateRange{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("dangling sale dropped from listing")
	}
	if records[0].ItemName != "" {
		t.Fatalf("expected blank name for deleted item, got %q", records[0].ItemName)
	}
}
