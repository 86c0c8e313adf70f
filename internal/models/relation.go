package models

import "time"

// Relation kinds. Follow and block are directed; friend is recorded
// one-sided on the acting user.
const (
	RelationFollow = "follow"
	RelationFriend = "friend"
	RelationBlock  = "block"
)

// Relation is a single edge between two users. Both directions of a follow
// are answered from the same row (following: user_id = me, followers:
// target_id = me), so an edge can never be half-written.
//
// Edges are hard-deleted: a soft-deleted row would still occupy the unique
// index and block re-following.
type Relation struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID   uint   `gorm:"not null;uniqueIndex:idx_relation_edge"`
	TargetID uint   `gorm:"not null;uniqueIndex:idx_relation_edge"`
	Kind     string `gorm:"not null;uniqueIndex:idx_relation_edge"`

	// Relationships
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Target User `gorm:"foreignKey:TargetID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
