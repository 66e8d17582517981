package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/config"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// ConfigurationResponse represents the configuration response structure for
// the panel frontend.
type ConfigurationResponse struct {
	BackendMode            string `json:"backendMode"`
	CacheTTLSec            int    `json:"cacheTtlSec"`
	NotificationDurationMs int    `json:"notificationDurationMs"`
	NotificationFeedLimit  int    `json:"notificationFeedLimit"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns the panel bootstrap values for the frontend.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	response := ConfigurationResponse{
		BackendMode:            cc.config.Backend.Mode,
		CacheTTLSec:            int(cc.config.Cache.TTL.Seconds()),
		NotificationDurationMs: int(notify.DefaultDuration.Milliseconds()),
		NotificationFeedLimit:  cc.config.Notify.FeedLimit,
	}
	c.JSON(http.StatusOK, response)
}
