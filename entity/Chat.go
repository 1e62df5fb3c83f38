package entity

import (
	"gorm.io/gorm"
)

// Chat is a two-party message thread. The participant pair is stored
// normalized (lower id first) and carries a unique index, so at most one chat
// exists per unordered pair even under concurrent find-or-create.
type Chat struct {
	gorm.Model
	UserLowID  uint `gorm:"not null;uniqueIndex:idx_chat_pair" json:"-"`
	UserHighID uint `gorm:"not null;uniqueIndex:idx_chat_pair" json:"-"`

	Messages []ChatMessage `gorm:"foreignKey:ChatID" json:"messages"`
}

// Participants returns the pair in storage order.
func (c *Chat) Participants() []uint {
	return []uint{c.UserLowID, c.UserHighID}
}

// HasParticipant reports whether the user belongs to this chat.
func (c *Chat) HasParticipant(userID uint) bool {
	return userID == c.UserLowID || userID == c.UserHighID
}

// NormalizePair orders two user ids for storage and lookup.
func NormalizePair(a, b uint) (low, high uint) {
	if a > b {
		return b, a
	}
	return a, b
}
