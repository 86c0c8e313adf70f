package models

import (
	"time"

	"gorm.io/gorm"
)

// PointEvent is an append-only record of fame/rich points earned by a user,
// the source stream for analytics aggregation.
type PointEvent struct {
	gorm.Model

	UserID     uint      `gorm:"not null;index"`
	FamePoints int64     `gorm:"not null;default:0"`
	RichPoints int64     `gorm:"not null;default:0"`
	Timestamp  time.Time `gorm:"not null;index"`
	RoomID     string    `gorm:"index"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
