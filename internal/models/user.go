package models

import "gorm.io/gorm"

// User represents a participant in the system. The reserved automated
// participant ("virus") is a regular User row flagged with IsVirus.
type User struct {
	gorm.Model
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	IsVirus      bool   `gorm:"not null;default:false;index"`
}
