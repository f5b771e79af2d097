package models

import "gorm.io/gorm"

// ActionKind identifies what a participant did on their turn.
type ActionKind string

const (
	ActionDiceRoll ActionKind = "dice_roll"
)

// RoomLog is one immutable entry in a room's action log. Rows are
// appended exactly once per resolved action and never updated or deleted.
type RoomLog struct {
	gorm.Model
	RoomID uint       `gorm:"not null;index"`
	UserID uint       `gorm:"not null;index"`
	Action ActionKind `gorm:"size:50;not null"`

	// Effect records the effect actually applied, which may differ from
	// the declared one after a landed space chains a second adjustment.
	Effect    SpaceEffect `gorm:"size:50;not null"`
	EffectNum int         `gorm:"not null"`

	// FinalPosition is the token position after the whole chain resolved.
	FinalPosition int `gorm:"not null"`
}
