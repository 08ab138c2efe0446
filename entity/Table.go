package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Code string `gorm:"uniqueIndex;size:100" json:"code"`

	Orders []Order `json:"-"`
}
