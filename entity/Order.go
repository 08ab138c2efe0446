package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type Order struct {
	gorm.Model
	Status     string  `gorm:"size:50;default:Pending" json:"status"`
	TotalPrice float64 `json:"totalPrice"`

	// Sequential per local calendar day; OrderDay pins the day so the
	// composite unique index can back the MAX+1 allocation.
	OrderNumber int    `gorm:"uniqueIndex:idx_orders_day_number" json:"orderNumber"`
	OrderDay    string `gorm:"uniqueIndex:idx_orders_day_number;size:10" json:"-"`

	CallWaiter        bool       `gorm:"default:false" json:"callWaiter"`
	LastCallTime      *time.Time `json:"-"`
	RequestBill       bool       `gorm:"default:false" json:"requestBill"`
	BillPaymentMethod string     `gorm:"size:50" json:"-"`

	TableID uint  `json:"tableId"`
	Table   Table `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
