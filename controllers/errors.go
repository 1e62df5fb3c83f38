package controllers

import (
	"errors"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// serviceError maps the domain error taxonomy onto HTTP statuses with the
// stable message strings the clients key on.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "Not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "You do not have permission to perform this action")
	case errors.Is(err, services.ErrSelfRequest):
		resp.BadRequest(c, "You cannot request your own ride")
	case errors.Is(err, services.ErrConflict):
		resp.BadRequest(c, "Request already exists")
	case errors.Is(err, services.ErrNoCapacity):
		resp.BadRequest(c, "No available seats left")
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, "Invalid input")
	default:
		resp.ServerError(c, err)
	}
}
