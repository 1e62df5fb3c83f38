package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// UserController exposes the user directory: public profile lookup by id,
// used by the chat client for partner names.
type UserController struct {
	service *services.AuthService
}

func NewUserController(s *services.AuthService) *UserController {
	return &UserController{s}
}

// GET /users/:userId
func (uc *UserController) Get(c *gin.Context) {
	userID := utils.ParseID(c.Param("userId"))

	user, err := uc.service.GetProfile(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"profilePicture": user.ProfilePicture,
	})
}
