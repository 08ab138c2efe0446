package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tableside/entity"
	"tableside/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Table{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Staff{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewTableRepository(db),
		repository.NewMenuRepository(db),
		time.UTC,
	)
}

func seedTableAndItem(t *testing.T, db *gorm.DB, price float64) (uint, uint) {
	t.Helper()
	table := entity.Table{Code: "table-001"}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	item := entity.MenuItem{Name: "Tomato soup", Price: price, Customizable: true, Category: "Soups"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return table.ID, item.ID
}

func TestPlaceOrderCustomizationSurcharge(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)

	out, err := svc.PlaceOrder(&PlaceOrderReq{
		TableID: tableID,
		Items:   []OrderLineIn{{MenuItemID: itemID, Quantity: 2, Customization: "no onions"}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	var o entity.Order
	if err := db.First(&o, out.OrderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if o.TotalPrice != 30 {
		t.Fatalf("total = %v, want 30 ((10+5)x2)", o.TotalPrice)
	}
	if o.Status != entity.StatusPending {
		t.Fatalf("status = %q, want Pending", o.Status)
	}

	var items []entity.OrderItem
	if err := db.Where("order_id = ?", o.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Customization != "no onions" {
		t.Fatalf("unexpected order items: %+v", items)
	}
}

func TestPlaceOrderNoSurchargeWithoutCustomization(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)

	out, err := svc.PlaceOrder(&PlaceOrderReq{
		TableID: tableID,
		Items:   []OrderLineIn{{MenuItemID: itemID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	var o entity.Order
	db.First(&o, out.OrderID)
	if o.TotalPrice != 30 {
		t.Fatalf("total = %v, want 30 (10x3)", o.TotalPrice)
	}
}

func TestDailyOrderNumbersSequential(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 12)

	for want := 1; want <= 3; want++ {
		out, err := svc.PlaceOrder(&PlaceOrderReq{
			TableID: tableID,
			Items:   []OrderLineIn{{MenuItemID: itemID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("order %d: %v", want, err)
		}
		if out.OrderNumber != want {
			t.Fatalf("order number = %d, want %d", out.OrderNumber, want)
		}
	}

	var numbers []int
	db.Model(&entity.Order{}).Order("order_number").Pluck("order_number", &numbers)
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("day numbering has a gap or duplicate: %v", numbers)
		}
	}
}

func TestDailyOrderNumbersResetAcrossDays(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 12)

	// An order from yesterday must not feed today's sequence.
	yesterday := time.Now().In(svc.Loc).AddDate(0, 0, -1).Format("2006-01-02")
	old := entity.Order{TableID: tableID, OrderNumber: 41, OrderDay: yesterday}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed old order: %v", err)
	}

	out, err := svc.PlaceOrder(&PlaceOrderReq{
		TableID: tableID,
		Items:   []OrderLineIn{{MenuItemID: itemID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if out.OrderNumber != 1 {
		t.Fatalf("order number = %d, want 1 on a fresh day", out.OrderNumber)
	}
}

func TestPlaceOrderUnknownTable(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	_, itemID := seedTableAndItem(t, db, 10)

	_, err := svc.PlaceOrder(&PlaceOrderReq{
		TableID: 999,
		Items:   []OrderLineIn{{MenuItemID: itemID, Quantity: 1}},
	})
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}

	var orders, items int64
	db.Model(&entity.Order{}).Count(&orders)
	db.Model(&entity.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("failed order left rows behind: %d orders, %d items", orders, items)
	}
}

func TestPlaceOrderUnknownMenuItem(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, _ := seedTableAndItem(t, db, 10)

	_, err := svc.PlaceOrder(&PlaceOrderReq{
		TableID: tableID,
		Items:   []OrderLineIn{{MenuItemID: 999, Quantity: 1}},
	})
	if !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("err = %v, want ErrMenuItemNotFound", err)
	}
}

func placeOne(t *testing.T, svc *OrderService, tableID, itemID uint) uint {
	t.Helper()
	out, err := svc.PlaceOrder(&PlaceOrderReq{
		TableID: tableID,
		Items:   []OrderLineIn{{MenuItemID: itemID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	return out.OrderID
}

func TestCallWaiterDebounce(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)
	orderID := placeOne(t, svc, tableID, itemID)

	if err := svc.CallWaiter(orderID); err != nil {
		t.Fatalf("first call: %v", err)
	}

	var o entity.Order
	db.First(&o, orderID)
	if !o.CallWaiter || o.LastCallTime == nil {
		t.Fatalf("first call did not set flag/timestamp: %+v", o)
	}
	firstCall := *o.LastCallTime

	if err := svc.CallWaiter(orderID); !errors.Is(err, ErrCallTooSoon) {
		t.Fatalf("second call err = %v, want ErrCallTooSoon", err)
	}

	db.First(&o, orderID)
	if o.LastCallTime.Unix() != firstCall.Unix() {
		t.Fatalf("rejected call moved the timestamp: %v -> %v", firstCall, o.LastCallTime)
	}

	// After the cooldown the call goes through again.
	stale := time.Now().UTC().Add(-4 * time.Minute)
	db.Model(&entity.Order{}).Where("id = ?", orderID).Update("last_call_time", stale)
	if err := svc.CallWaiter(orderID); err != nil {
		t.Fatalf("call after cooldown: %v", err)
	}
}

func TestDismissIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)
	orderID := placeOne(t, svc, tableID, itemID)

	if err := svc.DismissCall(orderID); err != nil {
		t.Fatalf("dismiss on clear call flag: %v", err)
	}
	if err := svc.DismissBill(orderID); err != nil {
		t.Fatalf("dismiss on clear bill flag: %v", err)
	}

	var o entity.Order
	db.First(&o, orderID)
	if o.CallWaiter || o.RequestBill || o.BillPaymentMethod != "" {
		t.Fatalf("dismiss mutated a clear order: %+v", o)
	}
}

func TestCompleteIsOneWay(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)
	orderID := placeOne(t, svc, tableID, itemID)

	for i := 0; i < 2; i++ {
		if err := svc.Complete(orderID); err != nil {
			t.Fatalf("complete attempt %d: %v", i+1, err)
		}
		var o entity.Order
		db.First(&o, orderID)
		if o.Status != entity.StatusCompleted {
			t.Fatalf("status = %q after attempt %d, want Completed", o.Status, i+1)
		}
	}

	if err := svc.Complete(999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("complete unknown order err = %v, want ErrOrderNotFound", err)
	}
}

func TestNotificationsTagging(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)
	orderID := placeOne(t, svc, tableID, itemID)

	if err := svc.RequestBill(orderID, "card"); err != nil {
		t.Fatalf("request bill: %v", err)
	}
	if err := svc.CallWaiter(orderID); err != nil {
		t.Fatalf("call waiter: %v", err)
	}

	calls, err := svc.Notifications()
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d notifications, want 1", len(calls))
	}
	if calls[0].CallType != CallTypeWaiterAndBill {
		t.Fatalf("call type = %q, want %q", calls[0].CallType, CallTypeWaiterAndBill)
	}
	if calls[0].PaymentMethod != "card" {
		t.Fatalf("payment method = %q, want card", calls[0].PaymentMethod)
	}
	if calls[0].CallTime == "" {
		t.Fatal("call time missing for an active waiter call")
	}

	if err := svc.DismissCall(orderID); err != nil {
		t.Fatalf("dismiss call: %v", err)
	}
	calls, _ = svc.Notifications()
	if len(calls) != 1 || calls[0].CallType != CallTypeBill {
		t.Fatalf("after dismissing the call, got %+v, want a single bill entry", calls)
	}

	if err := svc.DismissBill(orderID); err != nil {
		t.Fatalf("dismiss bill: %v", err)
	}
	calls, _ = svc.Notifications()
	if len(calls) != 0 {
		t.Fatalf("after dismissing both, got %+v, want none", calls)
	}
}

func TestPendingOrdersExcludesCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	tableID, itemID := seedTableAndItem(t, db, 10)
	first := placeOne(t, svc, tableID, itemID)
	placeOne(t, svc, tableID, itemID)

	if err := svc.Complete(first); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := svc.PendingOrders()
	if err != nil {
		t.Fatalf("pending orders: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending orders, want 1", len(pending))
	}
	if len(pending[0].Items) != 1 || pending[0].Items[0].Name != "Tomato soup" {
		t.Fatalf("pending summary missing line details: %+v", pending[0])
	}
}
