package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/fetch"
	"github.com/bazaarhq/adminapi/internal/logger"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// UserController handles user-related HTTP endpoints via the generic resource controller.
type UserController struct {
	rc *ResourceController[domain.User]
}

// NewUserController creates a controller for the /users collection.
func NewUserController(client backend.Client, center *notify.Center, opts fetch.Options) *UserController {
	service := NewResourceService[domain.User]("user", "/users", client, center, opts)
	return &UserController{rc: NewResourceController(service)}
}

// ListUsers handles GET /users.
func (uc *UserController) ListUsers(c *gin.Context) {
	logger.WithComponent("user-controller").Debugf("GET /users handler called")
	uc.rc.List(c)
}

// GetUser handles GET /users/:id.
func (uc *UserController) GetUser(c *gin.Context) {
	logger.WithComponent("user-controller").Debugf("GET /users/%s handler called", c.Param("id"))
	uc.rc.GetByID(c)
}

// CreateOrUpdateUser handles POST /users.
func (uc *UserController) CreateOrUpdateUser(c *gin.Context) {
	logger.WithComponent("user-controller").Debugf("POST /users handler called")
	uc.rc.CreateOrUpdate(c)
}

// DeleteUser handles DELETE /users/:id.
func (uc *UserController) DeleteUser(c *gin.Context) {
	logger.WithComponent("user-controller").Debugf("DELETE /users/%s handler called", c.Param("id"))
	uc.rc.Delete(c)
}
