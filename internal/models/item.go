package models

import "gorm.io/gorm"

type Item struct {
	gorm.Model

	Name  string `gorm:"not null"`
	Type  string `gorm:"not null"` // "frame", "color", "gift", "badge", "other"
	Price int64  `gorm:"not null"`
	Image string `gorm:"not null"`
}
