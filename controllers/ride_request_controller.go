package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type RideRequestController struct {
	service *services.RideRequestService
}

func NewRideRequestController(s *services.RideRequestService) *RideRequestController {
	return &RideRequestController{s}
}

type JoinRequestIn struct {
	Message string `json:"message" binding:"max=500"`
}

// POST /ride-requests/:rideId/request
func (rc *RideRequestController) Send(c *gin.Context) {
	rideID := utils.ParseID(c.Param("rideId"))
	if rideID == 0 {
		resp.BadRequest(c, "Invalid ride id")
		return
	}
	uid := utils.CurrentUserID(c)

	var in JoinRequestIn
	if err := c.ShouldBindJSON(&in); err != nil && c.Request.ContentLength > 0 {
		resp.BadRequest(c, "Invalid request body")
		return
	}

	req, err := rc.service.Submit(rideID, uid, in.Message)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.Created(c, "Join request sent successfully", req)
}

// GET /ride-requests/:rideId/requests (owner only)
func (rc *RideRequestController) List(c *gin.Context) {
	rideID := utils.ParseID(c.Param("rideId"))
	uid := utils.CurrentUserID(c)

	reqs, err := rc.service.ListForRide(rideID, uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, reqs)
}

// GET /ride-requests/:rideId/request-status
func (rc *RideRequestController) Status(c *gin.Context) {
	rideID := utils.ParseID(c.Param("rideId"))
	uid := utils.CurrentUserID(c)

	req, err := rc.service.StatusFor(rideID, uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "hasRequest": req != nil, "data": req})
}

// PUT /ride-requests/:rideId/requests/:requestId/accept
func (rc *RideRequestController) Accept(c *gin.Context) {
	rideID := utils.ParseID(c.Param("rideId"))
	requestID := utils.ParseID(c.Param("requestId"))
	uid := utils.CurrentUserID(c)

	req, err := rc.service.Accept(rideID, requestID, uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OKMsg(c, "Join request accepted", req)
}

// PUT /ride-requests/:rideId/requests/:requestId/reject
func (rc *RideRequestController) Reject(c *gin.Context) {
	rideID := utils.ParseID(c.Param("rideId"))
	requestID := utils.ParseID(c.Param("requestId"))
	uid := utils.CurrentUserID(c)

	req, err := rc.service.Reject(rideID, requestID, uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OKMsg(c, "Join request rejected", req)
}
