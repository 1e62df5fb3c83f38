package entity

import (
	"gorm.io/gorm"
)

// ChatMessage is append-only; CreatedAt is the authoritative timestamp.
type ChatMessage struct {
	gorm.Model
	ChatID uint `gorm:"not null;index" json:"chatId"`
	Chat   Chat `json:"-"`

	SenderID uint   `gorm:"not null" json:"senderId"`
	Sender   User   `json:"-"`
	Body     string `gorm:"not null" json:"body"`
}
