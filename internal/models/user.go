package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	// PublicID is the 10-digit account number shown to other users.
	PublicID        string `gorm:"uniqueIndex;not null;size:10"`
	Avatar          string
	Frame           string
	Role            string `gorm:"not null;default:user"` // "user" or "admin"
	IsEmailVerified bool   `gorm:"not null;default:false"`
	Credits         int64  `gorm:"not null;default:0"`
	FamePoints      int64  `gorm:"not null;default:0"`
	RichPoints      int64  `gorm:"not null;default:0"`
	Level           int    `gorm:"not null;default:1"`
	IsHost          bool   `gorm:"not null;default:false"`
	CurrentRoom     string
	HostAgencyID    *uint `gorm:"index"`

	// Relationships
	HostAgency     *Agency          `gorm:"foreignKey:HostAgencyID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Relations      []Relation       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreditsHistory []CreditsHistory `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	PointEvents    []PointEvent     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
