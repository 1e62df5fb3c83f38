package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db}
}

func (r *ChatRepository) Create(chat *entity.Chat) error {
	return r.db.Create(chat).Error
}

func (r *ChatRepository) FindByPair(low, high uint) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.Where("user_low_id = ? AND user_high_id = ?", low, high).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) FindByID(id uint) (*entity.Chat, error) {
	var chat entity.Chat
	if err := r.db.First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindByIDWithMessages loads the full ordered history.
func (r *ChatRepository) FindByIDWithMessages(id uint) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at ASC, chat_messages.id ASC")
	}).First(&chat, id).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) ListForUser(userID uint) ([]entity.Chat, error) {
	var chats []entity.Chat
	err := r.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at ASC, chat_messages.id ASC")
	}).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *ChatRepository) CreateMessage(msg *entity.ChatMessage) error {
	return r.db.Create(msg).Error
}
