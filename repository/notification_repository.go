package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db}
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByRecipient(recipientID uint) ([]entity.Notification, error) {
	var ns []entity.Notification
	err := r.db.Preload("Sender").Preload("Ride").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&ns).Error
	return ns, err
}

func (r *NotificationRepository) CountUnread(recipientID uint) (int64, error) {
	var n int64
	err := r.db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, entity.NotifUnread).
		Count(&n).Error
	return n, err
}

// MarkRead is scoped to the recipient; zero affected rows means the
// notification does not exist or belongs to someone else.
func (r *NotificationRepository) MarkRead(id, recipientID uint) (int64, error) {
	res := r.db.Model(&entity.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("status", entity.NotifRead)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) MarkAllRead(recipientID uint) error {
	return r.db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, entity.NotifUnread).
		Update("status", entity.NotifRead).Error
}

// Delete is a hard delete, scoped to the recipient.
func (r *NotificationRepository) Delete(id, recipientID uint) (int64, error) {
	res := r.db.Unscoped().
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&entity.Notification{})
	return res.RowsAffected, res.Error
}

// DeleteJoinRequestNotice removes the join_request notification a submit left
// with the ride owner, once the owner has acted on it.
func (r *NotificationRepository) DeleteJoinRequestNotice(recipientID, senderID, rideID uint) error {
	return r.db.Unscoped().
		Where("recipient_id = ? AND sender_id = ? AND ride_id = ? AND type = ?",
			recipientID, senderID, rideID, entity.NotifJoinRequest).
		Delete(&entity.Notification{}).Error
}
