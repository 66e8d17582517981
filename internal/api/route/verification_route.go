package route

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/api/controller"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

func NewVerificationRouter(group *gin.RouterGroup, appCtx *app.App, opts fetch.Options) {
	vc := controller.NewVerificationController(appCtx.Client, appCtx.Center, opts)

	group.GET("verifications", vc.ListVerifications)
	group.POST("verifications/:id/approve", vc.Approve)
	group.POST("verifications/:id/reject", vc.Reject)
}
