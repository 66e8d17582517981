package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/notify"
)

// NotificationController exposes the in-memory notification feed.
type NotificationController struct {
	center *notify.Center
}

func NewNotificationController(center *notify.Center) *NotificationController {
	return &NotificationController{center: center}
}

// ListNotifications handles GET /notifications.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, nc.center.List())
}

// DismissNotification handles DELETE /notifications/:id.
func (nc *NotificationController) DismissNotification(c *gin.Context) {
	if !nc.center.Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearNotifications handles DELETE /notifications.
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	nc.center.Clear()
	c.Status(http.StatusNoContent)
}
