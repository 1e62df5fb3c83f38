package entity

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifJoinRequest     NotificationType = "join_request"
	NotifRequestAccepted NotificationType = "request_accepted"
	NotifRequestRejected NotificationType = "request_rejected"
)

type NotificationStatus string

const (
	NotifUnread NotificationStatus = "unread"
	NotifRead   NotificationStatus = "read"
)

type Notification struct {
	gorm.Model
	RecipientID uint `gorm:"not null;index" json:"recipientUserId"`
	Recipient   User `json:"-"`

	SenderID uint `gorm:"not null" json:"senderUserId"`
	Sender   User `json:"-"`

	RideID uint `gorm:"not null" json:"rideId"`
	Ride   Ride `json:"-"`

	Type    NotificationType   `gorm:"not null;default:join_request" json:"type"`
	Status  NotificationStatus `gorm:"not null;default:unread" json:"status"`
	Message string             `json:"message"`
}
