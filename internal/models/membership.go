package models

import "gorm.io/gorm"

// Membership is the pivot between a room and a participant, carrying the
// per-room state: the turn slot assigned at start and the token position.
type Membership struct {
	gorm.Model
	RoomID uint `gorm:"not null;uniqueIndex:idx_room_user"`
	UserID uint `gorm:"not null;uniqueIndex:idx_room_user"`

	// TurnOrder is nil until the game starts, then a distinct index in
	// [0, participant count).
	TurnOrder *int `gorm:"index"`

	// Position of the participant's token on the track. 0 is the start.
	Position int `gorm:"not null;default:0"`

	// SkipNext marks a participant who must sit out their next due turn.
	SkipNext bool `gorm:"not null;default:false"`

	// Finished marks a participant whose token reached the goal.
	Finished bool `gorm:"not null;default:false"`

	User User `gorm:"foreignKey:UserID"`
}
