package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

func NewProfileRouter(group *gin.RouterGroup, appCtx *app.App, opts fetch.Options) {
	pc := controller.NewProfileController(appCtx.Client, appCtx.Center, opts)

	group.GET("profile", pc.GetProfile)
	group.PUT("profile", pc.UpdateProfile)
	group.PATCH("profile/preferences", pc.UpdatePreferences)
	group.PUT("profile/password", pc.ChangePassword)
}
