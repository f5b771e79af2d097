package models

import "gorm.io/gorm"

// RoomStatus is the lifecycle state of a room.
type RoomStatus string

const (
	RoomStatusOpen   RoomStatus = "open"   // accepting joins, no turn order yet
	RoomStatusBusy   RoomStatus = "busy"   // game in progress, turn order fixed
	RoomStatusClosed RoomStatus = "closed" // terminal, kept for audit
)

// Room represents one game session instance.
type Room struct {
	gorm.Model
	Uname          string     `gorm:"size:64;unique;not null"` // URL-safe unique name
	Name           string     `gorm:"size:255;not null"`
	OwnerID        uint       `gorm:"not null;index"`
	BoardID        uint       `gorm:"not null"`
	Status         RoomStatus `gorm:"size:20;not null;default:'open';index"`
	MaxMemberCount int        `gorm:"not null;default:4"`

	// MemberCount tracks human memberships; the virus slot added at game
	// start is not counted against MaxMemberCount.
	MemberCount int `gorm:"not null;default:0"`

	// CurrentTurn is the turn_order index currently due. Only meaningful
	// while Status is busy.
	CurrentTurn int `gorm:"not null;default:0"`

	Owner   User         `gorm:"foreignKey:OwnerID"`
	Board   Board        `gorm:"foreignKey:BoardID"`
	Members []Membership `gorm:"foreignKey:RoomID"`
}
