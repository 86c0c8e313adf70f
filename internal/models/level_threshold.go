package models

import "gorm.io/gorm"

// LevelThreshold maps a level to the fame/rich point totals required to
// reach it.
type LevelThreshold struct {
	gorm.Model

	Level         int   `gorm:"not null;uniqueIndex"`
	FameThreshold int64 `gorm:"not null"`
	RichThreshold int64 `gorm:"not null"`
}
