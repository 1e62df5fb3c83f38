package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type ChatService struct {
	repo *repository.ChatRepository
}

func NewChatService(repo *repository.ChatRepository) *ChatService {
	return &ChatService{repo}
}

// ChatOut is the API shape of a chat: the normalized pair is presented as a
// participants array, messages in persisted order.
type ChatOut struct {
	ID           uint                 `json:"id"`
	Participants []uint               `json:"participants"`
	Messages     []entity.ChatMessage `json:"messages"`
}

func toChatOut(c *entity.Chat) *ChatOut {
	return &ChatOut{ID: c.ID, Participants: c.Participants(), Messages: c.Messages}
}

// FindOrCreate returns the chat for the unordered pair, creating it if
// absent. The unique index on the normalized pair makes concurrent calls
// converge on a single record; the loser re-reads.
func (s *ChatService) FindOrCreate(userA, userB uint) (*ChatOut, error) {
	if userA == userB || userA == 0 || userB == 0 {
		return nil, ErrValidation
	}
	low, high := entity.NormalizePair(userA, userB)

	chat, err := s.repo.FindByPair(low, high)
	if err == nil {
		return toChatOut(chat), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat = &entity.Chat{UserLowID: low, UserHighID: high}
	if err := s.repo.Create(chat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			chat, err = s.repo.FindByPair(low, high)
			if err != nil {
				return nil, err
			}
			return toChatOut(chat), nil
		}
		return nil, err
	}
	return toChatOut(chat), nil
}

// ListForUser returns all chats the user participates in, with full message
// history so the list view can show a preview.
func (s *ChatService) ListForUser(userID uint) ([]*ChatOut, error) {
	chats, err := s.repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*ChatOut, 0, len(chats))
	for i := range chats {
		out = append(out, toChatOut(&chats[i]))
	}
	return out, nil
}

// Get returns one chat with its ordered history. Only a participant may
// read it.
func (s *ChatService) Get(chatID, viewerID uint) (*ChatOut, error) {
	chat, err := s.repo.FindByIDWithMessages(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(viewerID) {
		return nil, ErrForbidden
	}
	return toChatOut(chat), nil
}

// Append persists a message to the chat and returns the stored record with
// its server-assigned id and timestamp. ErrNotFound if the chat is absent.
func (s *ChatService) Append(chatID, senderID uint, body string) (*entity.ChatMessage, error) {
	if body == "" {
		return nil, ErrValidation
	}
	if _, err := s.repo.FindByID(chatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	msg := &entity.ChatMessage{ChatID: chatID, SenderID: senderID, Body: body}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
