package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	service *services.ChatService
}

func NewChatController(s *services.ChatService) *ChatController {
	return &ChatController{s}
}

// GET /chats/user/:userId (own list only)
func (cc *ChatController) ListForUser(c *gin.Context) {
	userID := utils.ParseID(c.Param("userId"))
	if userID == 0 {
		resp.BadRequest(c, "Invalid user id")
		return
	}
	if userID != utils.CurrentUserID(c) {
		resp.Forbidden(c, "You do not have permission to perform this action")
		return
	}

	chats, err := cc.service.ListForUser(userID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, chats)
}

// GET /chats/:chatId (participants only)
func (cc *ChatController) Get(c *gin.Context) {
	chatID := utils.ParseID(c.Param("chatId"))

	chat, err := cc.service.Get(chatID, utils.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, chat)
}

type CreateChatIn struct {
	Participants []uint `json:"participants" binding:"required,len=2"`
}

// POST /chats: find-or-create by unordered participant pair. The session
// user must be one of the participants.
func (cc *ChatController) Create(c *gin.Context) {
	var in CreateChatIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "participants must be a pair of user ids")
		return
	}
	me := utils.CurrentUserID(c)
	if in.Participants[0] != me && in.Participants[1] != me {
		resp.Forbidden(c, "You do not have permission to perform this action")
		return
	}

	chat, err := cc.service.FindOrCreate(in.Participants[0], in.Participants[1])
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.Created(c, "Chat ready", chat)
}
