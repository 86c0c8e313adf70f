package models

import (
	"time"

	"gorm.io/gorm"
)

type Agency struct {
	gorm.Model

	Name    string `gorm:"not null"`
	Balance int64  `gorm:"not null;default:0"`
	AdminID uint   `gorm:"not null;index"`

	// Relationships
	Admin   User            `gorm:"foreignKey:AdminID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members []AgencyMember  `gorm:"foreignKey:AgencyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	History []AgencyHistory `gorm:"foreignKey:AgencyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type AgencyMember struct {
	gorm.Model

	AgencyID       uint  `gorm:"not null;uniqueIndex:idx_agency_member"`
	UserID         uint  `gorm:"not null;uniqueIndex:idx_agency_member"`
	DayTarget      int64 `gorm:"not null;default:0"`
	MonthTarget    int64 `gorm:"not null;default:0"`
	Credit         int64 `gorm:"not null;default:0"`
	ExpectedSalary int64 `gorm:"not null;default:0"`

	// Relationships
	Agency Agency `gorm:"foreignKey:AgencyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// AgencyHistory is an append-only log of credit deltas inside an agency.
type AgencyHistory struct {
	gorm.Model

	AgencyID uint      `gorm:"not null;index"`
	UserID   uint      `gorm:"not null;index"`
	Amount   int64     `gorm:"not null"`
	Date     time.Time `gorm:"not null"`

	// Relationships
	Agency Agency `gorm:"foreignKey:AgencyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
