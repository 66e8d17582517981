package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

func NewOrderRouter(group *gin.RouterGroup, appCtx *app.App, opts fetch.Options) {
	oc := controller.NewOrderController(appCtx.Client, appCtx.Center, opts)

	group.GET("orders", oc.ListOrders)
	group.GET("orders/:id", oc.GetOrder)
	group.PUT("orders/:id/status", oc.UpdateOrderStatus)
}
