package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

func NewSupplierRouter(group *gin.RouterGroup, appCtx *app.App, opts fetch.Options) {
	sc := controller.NewSupplierController(appCtx.Client, appCtx.Center, opts)

	group.GET("suppliers", sc.ListSuppliers)
	group.GET("suppliers/:id", sc.GetSupplier)
	group.POST("suppliers", sc.CreateOrUpdateSupplier)
	group.DELETE("suppliers/:id", sc.DeleteSupplier)
}
