package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
)

func NewConfigurationRouter(group *gin.RouterGroup, appCtx *app.App) {
	cc := controller.NewConfigurationController(appCtx.Config)

	group.GET("configuration", cc.GetConfiguration)
}
