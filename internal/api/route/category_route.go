package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

func NewCategoryRouter(group *gin.RouterGroup, appCtx *app.App, opts fetch.Options) {
	cc := controller.NewCategoryController(appCtx.Client, appCtx.Center, opts)

	group.GET("categories", cc.ListCategories)
	group.GET("categories/:id", cc.GetCategory)
	group.POST("categories", cc.CreateOrUpdateCategory)
	group.DELETE("categories/:id", cc.DeleteCategory)
}
