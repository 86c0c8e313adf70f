package models

import (
	"time"

	"gorm.io/gorm"
)

// Group invitation statuses. Transitions are not validated at this layer.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

type Group struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	AdminID     uint `gorm:"not null;index"`
	GroupRoom   string

	// Relationships
	Admin       User              `gorm:"foreignKey:AdminID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members     []GroupMember     `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invitations []GroupInvitation `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type GroupMember struct {
	gorm.Model

	GroupID  uint      `gorm:"not null;uniqueIndex:idx_group_member"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_group_member"`
	Role     string    `gorm:"not null;default:member"` // "member" or "moderator"
	JoinedAt time.Time `gorm:"not null"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

type GroupInvitation struct {
	gorm.Model

	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_invitation"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_invitation"`
	Status    string    `gorm:"not null;default:pending"`
	InvitedAt time.Time `gorm:"not null"`

	// Relationships
	Group Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
