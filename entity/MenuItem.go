package entity

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name          string  `gorm:"size:100" json:"name"`
	Description   string  `gorm:"size:200" json:"description"`
	Price         float64 `json:"price"`
	Customizable  bool    `gorm:"default:false" json:"customizable"`
	Category      string  `gorm:"size:50" json:"category"`
	ImageFilename string  `gorm:"size:100" json:"imageFilename"`

	// Stored but not filtered on listing; the display layer decides.
	DisplayDate *time.Time `json:"displayDate,omitempty"`

	OrderItems []OrderItem `json:"-"`
}
