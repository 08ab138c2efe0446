package repository

import (
	"time"

	"tableside/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// NextOrderNumber allocates MAX+1 for the given local calendar day. Must run
// inside the same transaction as the order insert; the composite unique
// index on (order_day, order_number) turns a lost race into a constraint
// error instead of a duplicate.
func (r *OrderRepository) NextOrderNumber(tx *gorm.DB, day string) (int, error) {
	var row struct{ N int }
	err := tx.Model(&entity.Order{}).
		Select("COALESCE(MAX(order_number), 0) AS n").
		Where("order_day = ?", day).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.N + 1, nil
}

func (r *OrderRepository) ListByStatus(status string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("status = ?", status).Order("id").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListActive() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("status <> ?", entity.StatusCompleted).Order("id").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListWithActiveCalls() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("call_waiter = ? OR request_bill = ?", true, true).Order("id").Find(&orders).Error
	return orders, err
}

// ---------------- Order lines (joined with menu names) ----------------

type LineDetail struct {
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Customization string  `json:"customization"`
}

func (r *OrderRepository) GetLineDetails(orderID uint) ([]LineDetail, error) {
	var out []LineDetail
	err := r.DB.Table("order_items AS oi").
		Select("m.name, oi.quantity, m.price, oi.customization").
		Joins("JOIN menu_items m ON m.id = oi.menu_item_id").
		Where("oi.order_id = ? AND oi.deleted_at IS NULL", orderID).
		Order("oi.id").
		Scan(&out).Error
	return out, err
}

// ---------------- Flag mutations ----------------

func (r *OrderRepository) SetCallWaiter(orderID uint, at time.Time) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"call_waiter": true, "last_call_time": at}).Error
}

func (r *OrderRepository) ClearCallWaiter(orderID uint) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("call_waiter", false).Error
}

func (r *OrderRepository) SetBillRequest(orderID uint, paymentMethod string) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"request_bill": true, "bill_payment_method": paymentMethod}).Error
}

func (r *OrderRepository) ClearBillRequest(orderID uint) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"request_bill": false, "bill_payment_method": ""}).Error
}

// UpdateStatusGuard flips status only when the current value matches,
// making the Pending -> Completed transition one-way under concurrency.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
