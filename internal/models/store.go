package models

import "gorm.io/gorm"

type StoreSection struct {
	gorm.Model

	SectionName string `gorm:"not null"`

	// Relationships
	Items []Item `gorm:"many2many:store_section_items"`
}
