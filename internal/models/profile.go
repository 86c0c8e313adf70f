package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Profile struct {
	gorm.Model

	UserID       uint `gorm:"not null;uniqueIndex"`
	Country      string
	Gender       string // "male" or "female"
	Age          int
	Charisma     int64 `gorm:"not null;default:0"`
	Level        int   `gorm:"not null;default:1"`
	GroupName    string
	VipLevel     int `gorm:"not null;default:0"`
	ProExpiresAt *time.Time
	ChargeLevel  datatypes.JSON `gorm:"type:jsonb"` // {"level": n, "stars": 0..11}
	Info         datatypes.JSON `gorm:"type:jsonb"` // {"about": "", "album": [], "interests": []}
	Gifts        datatypes.JSON `gorm:"type:jsonb"` // {"total_gifts": n, "top_gifts": [{"image": ...}]}
	Badges       datatypes.JSON `gorm:"type:jsonb"` // {"total_badges": n, "top_badges": [{"image": ...}]}
	CurrentRoom  string

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
