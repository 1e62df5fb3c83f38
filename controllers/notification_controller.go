package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController(s *services.NotificationService) *NotificationController {
	return &NotificationController{s}
}

// GET /notifications
func (nc *NotificationController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	list, err := nc.service.List(uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "unreadCount": list.UnreadCount, "data": list.Items})
}

// PUT /notifications/read-all
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	if err := nc.service.MarkAllRead(uid); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OKMsg(c, "All notifications marked as read", nil)
}

// PUT /notifications/:notificationId/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id := utils.ParseID(c.Param("notificationId"))
	uid := utils.CurrentUserID(c)

	if err := nc.service.MarkRead(id, uid); err != nil {
		serviceError(c, err)
		return
	}
	resp.OKMsg(c, "Notification marked as read", nil)
}

// DELETE /notifications/:notificationId
func (nc *NotificationController) Delete(c *gin.Context) {
	id := utils.ParseID(c.Param("notificationId"))
	uid := utils.CurrentUserID(c)

	if err := nc.service.Delete(id, uid); err != nil {
		serviceError(c, err)
		return
	}
	resp.OKMsg(c, "Notification deleted", nil)
}
