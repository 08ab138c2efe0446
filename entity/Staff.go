package entity

import (
	"gorm.io/gorm"
)

type Staff struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string `json:"-"`
}
