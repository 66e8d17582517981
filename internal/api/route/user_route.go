package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

func NewUserRouter(group *gin.RouterGroup, appCtx *app.App, opts fetch.Options) {
	uc := controller.NewUserController(appCtx.Client, appCtx.Center, opts)

	group.GET("users", uc.ListUsers)
	group.GET("users/:id", uc.GetUser)
	group.POST("users", uc.CreateOrUpdateUser)
	group.DELETE("users/:id", uc.DeleteUser)
}
