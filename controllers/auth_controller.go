package controllers

import (
	"errors"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service   *services.AuthService
	jwtTTLSec int
}

func NewAuthController(s *services.AuthService, jwtTTLSec int) *AuthController {
	return &AuthController{service: s, jwtTTLSec: jwtTTLSec}
}

type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	ContactNumber string `json:"contactNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := ac.service.Register(req.Name, req.Email, req.Password, req.ContactNumber)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			resp.BadRequest(c, "Email already registered")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, "Registered successfully", user)
}

// POST /auth/login: sets the session cookie and returns the token for API
// clients.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.service.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "Invalid credentials")
		return
	}

	c.SetCookie("token", token, ac.jwtTTLSec, "/", "", false, true)
	resp.OKMsg(c, "Logged in", gin.H{"token": token, "user": user})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	resp.OKMsg(c, "Logged out", nil)
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	user, err := ac.service.GetProfile(uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, user)
}
