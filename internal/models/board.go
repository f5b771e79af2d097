package models

import "gorm.io/gorm"

// SpaceEffect identifies the state change triggered when a token lands
// on a space.
type SpaceEffect string

const (
	EffectNone         SpaceEffect = "none"
	EffectMoveForward  SpaceEffect = "move_forward"
	EffectMoveBackward SpaceEffect = "move_backward"
	EffectSkipTurn     SpaceEffect = "skip_turn"
	EffectGoToStart    SpaceEffect = "go_to_start"
)

// Board represents a sugoroku track. Boards are immutable once a room
// references them.
type Board struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	GoalPosition int    `gorm:"not null"`

	Spaces []Space `gorm:"foreignKey:BoardID"`
}

// Space is one position on a board and the effect it carries.
type Space struct {
	gorm.Model
	BoardID   uint        `gorm:"not null;index;uniqueIndex:idx_board_position"`
	Position  int         `gorm:"not null;uniqueIndex:idx_board_position"`
	Effect    SpaceEffect `gorm:"size:50;not null;default:'none'"`
	EffectNum int         `gorm:"not null;default:0"`
}
