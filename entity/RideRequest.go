package entity

import (
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type RideRequest struct {
	gorm.Model

	// One request per (ride, user) pair; the index is the concurrency guard
	// for racing submits.
	RideID uint `gorm:"not null;uniqueIndex:idx_ride_user" json:"rideId"`
	Ride   Ride `json:"-"`

	UserID uint `gorm:"not null;uniqueIndex:idx_ride_user" json:"userId"`
	User   User `json:"-"`

	Status  RequestStatus `gorm:"not null;default:pending" json:"status"`
	Message string        `gorm:"size:500" json:"message,omitempty"`
}
