package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string `gorm:"not null" json:"name"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	Password       string `json:"-"`
	ContactNumber  string `json:"contactNumber"`
	ProfilePicture string `json:"profilePicture"`
	Role           string `gorm:"not null;default:user" json:"role"`

	// Relations, preloaded only where an endpoint needs them
	Rides         []Ride         `gorm:"foreignKey:InitiatorID" json:"-"`
	RideRequests  []RideRequest  `gorm:"foreignKey:UserID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:RecipientID" json:"-"`
	MessagesSent  []ChatMessage  `gorm:"foreignKey:SenderID" json:"-"`
}
