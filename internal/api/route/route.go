package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bazaarhq/adminapi/internal/api/middleware"
	"github.com/bazaarhq/adminapi/internal/app"
	"github.com/bazaarhq/adminapi/internal/fetch"
)

// SetupRoutes builds the gin engine with all API routes wired to the app
// dependencies.
func SetupRoutes(appCtx *app.App, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	// Panel bootstrap values live outside the versioned API group,
	// next to /health.
	NewConfigurationRouter(r.Group(""), appCtx)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout))

	opts := fetch.Options{
		TTL:    appCtx.Config.Cache.TTL,
		Dedupe: appCtx.Config.Cache.Dedupe,
	}

	NewUserRouter(api, appCtx, opts)
	NewSupplierRouter(api, appCtx, opts)
	NewCategoryRouter(api, appCtx, opts)
	NewOrderRouter(api, appCtx, opts)
	NewVerificationRouter(api, appCtx, opts)
	NewProfileRouter(api, appCtx, opts)
	NewNotificationRouter(api, appCtx)

	return r
}
