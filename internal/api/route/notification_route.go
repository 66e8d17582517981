package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
)

func NewNotificationRouter(group *gin.RouterGroup, appCtx *app.App) {
	nc := controller.NewNotificationController(appCtx.Center)

	group.GET("notifications", nc.ListNotifications)
	group.DELETE("notifications/:id", nc.DismissNotification)
	group.DELETE("notifications", nc.ClearNotifications)
}
