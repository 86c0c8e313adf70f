package models

import (
	"time"

	"gorm.io/gorm"
)

// Credit transaction types.
const (
	CreditsAdd      = "add"
	CreditsDeduct   = "deduct"
	CreditsPurchase = "purchase"
)

// CreditsHistory is an append-only log of credit balance changes.
type CreditsHistory struct {
	gorm.Model

	UserID uint      `gorm:"not null;index"`
	Amount int64     `gorm:"not null"`
	Type   string    `gorm:"not null"` // "add", "deduct", "purchase"
	ItemID *uint     `gorm:"index"`
	Date   time.Time `gorm:"not null"`

	// Relationships
	User User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Item *Item `gorm:"foreignKey:ItemID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
