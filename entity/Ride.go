package entity

import (
	"time"

	"gorm.io/gorm"
)

// Place is a structured location produced by the client-side autocomplete.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Ride struct {
	gorm.Model
	InitiatorID uint `json:"initiatorId"`
	Initiator   User `json:"-"`

	Pickup      Place `gorm:"embedded;embeddedPrefix:pickup_" json:"pickup"`
	Destination Place `gorm:"embedded;embeddedPrefix:destination_" json:"destination"`

	DepartureTime time.Time `json:"departureTime"`

	// Remaining passenger seats; never negative (guarded decrement on accept).
	Seats int `gorm:"check:seats >= 0" json:"seats"`

	Fare     *int64 `json:"fare,omitempty"`
	RideType string `gorm:"not null;default:buddy" json:"rideType"` // cab | buddy
	Notes    string `json:"notes,omitempty"`

	Requests []RideRequest `gorm:"foreignKey:RideID" json:"-"`
}
