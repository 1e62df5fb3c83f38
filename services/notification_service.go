package services

import (
	"errors"
	"log"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo}
}

// Create appends a notification record.
func (s *NotificationService) Create(recipientID, senderID, rideID uint, typ entity.NotificationType, message string) (*entity.Notification, error) {
	n := &entity.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		RideID:      rideID,
		Type:        typ,
		Message:     message,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Notify is the best-effort variant used by lifecycle transitions: a failed
// notification must never roll back the transition that triggered it, so the
// error is logged and swallowed.
func (s *NotificationService) Notify(recipientID, senderID, rideID uint, typ entity.NotificationType, message string) {
	if _, err := s.Create(recipientID, senderID, rideID, typ, message); err != nil {
		log.Printf("notification create failed (recipient=%d type=%s): %v", recipientID, typ, err)
	}
}

type NotificationList struct {
	UnreadCount int64                 `json:"unreadCount"`
	Items       []entity.Notification `json:"items"`
}

// List returns the recipient's notifications newest-first plus the unread count.
func (s *NotificationService) List(recipientID uint) (*NotificationList, error) {
	items, err := s.repo.ListByRecipient(recipientID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(recipientID)
	if err != nil {
		return nil, err
	}
	return &NotificationList{UnreadCount: unread, Items: items}, nil
}

func (s *NotificationService) MarkRead(id, recipientID uint) error {
	affected, err := s.repo.MarkRead(id, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(recipientID uint) error {
	return s.repo.MarkAllRead(recipientID)
}

func (s *NotificationService) Delete(id, recipientID uint) error {
	affected, err := s.repo.Delete(id, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DismissJoinRequestNotice clears the owner's join_request notification after
// an accept/reject; best-effort like Notify.
func (s *NotificationService) DismissJoinRequestNotice(ownerID, requesterID, rideID uint) {
	err := s.repo.DeleteJoinRequestNotice(ownerID, requesterID, rideID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("notification cleanup failed (owner=%d ride=%d): %v", ownerID, rideID, err)
	}
}
