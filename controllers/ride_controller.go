package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type RideController struct {
	service *services.RideService
}

func NewRideController(s *services.RideService) *RideController {
	return &RideController{s}
}

// POST /rides
func (rc *RideController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var in services.CreateRideIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}

	ride, err := rc.service.Create(uid, &in)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.Created(c, "Ride created successfully", ride)
}

// GET /rides?pickup=&destination=
func (rc *RideController) List(c *gin.Context) {
	rides, err := rc.service.List(c.Query("pickup"), c.Query("destination"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rides)
}

// GET /rides/:rideId
func (rc *RideController) Detail(c *gin.Context) {
	rideID := utils.ParseID(c.Param("rideId"))

	ride, err := rc.service.Detail(rideID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, ride)
}
