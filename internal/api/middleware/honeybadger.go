package middleware

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// HoneybadgerMiddleware reports HTTP errors and panics to Honeybadger.
// On panic, it notifies and re-panics so gin.Recovery still renders the 500.
// Without HONEYBADGER_API_KEY in the environment the middleware is a no-op.
func HoneybadgerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	apiKey := os.Getenv("HONEYBADGER_API_KEY")
	if apiKey == "" {
		logger.Info("Honeybadger is not active. Set HONEYBADGER_API_KEY to enable error reporting.")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	honeybadger.Configure(honeybadger.Configuration{
		APIKey: apiKey,
		Env:    os.Getenv("GO_ENV"),
	})
	logger.Info("Honeybadger error reporting is enabled.")

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				msg := fmt.Sprintf("Panic: %s %s", c.Request.Method, c.Request.URL.Path)
				honeybadger.Notify(msg, c.Request,
					honeybadger.Context{"stack": string(debug.Stack())},
					honeybadger.Tags{"panic", "http"})
				logger.Error("Recovered from panic, notified Honeybadger: ", rec)
				panic(rec) // re-panic so gin.Recovery produces the response
			}
		}()

		c.Next()

		reportStatus(logger, c)
	}
}

// reportStatus files a Honeybadger notice for failed requests. 404s are
// skipped; they are routine and would drown out real errors.
func reportStatus(logger *logrus.Logger, c *gin.Context) {
	status := c.Writer.Status()
	if status < 400 || status == 404 {
		return
	}

	msg := fmt.Sprintf("HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path)
	if status >= 500 {
		honeybadger.Notify("Error: "+msg, c.Request, honeybadger.Tags{"5XX", "http"})
	} else {
		honeybadger.Notify("Warning: "+msg, honeybadger.Tags{"4XX", "http"})
	}
	logger.Warnf("Honeybadger reported HTTP %d for %s %s", status, c.Request.Method, c.Request.URL.Path)
}
