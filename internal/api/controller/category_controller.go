package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/fetch"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// CategoryController handles category endpoints via the generic resource controller.
type CategoryController struct {
	rc *ResourceController[domain.Category]
}

// NewCategoryController creates a controller for the /categories collection.
func NewCategoryController(client backend.Client, center *notify.Center, opts fetch.Options) *CategoryController {
	service := NewResourceService[domain.Category]("category", "/categories", client, center, opts)
	return &CategoryController{rc: NewResourceController(service)}
}

// ListCategories handles GET /categories.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	cc.rc.List(c)
}

// GetCategory handles GET /categories/:id.
func (cc *CategoryController) GetCategory(c *gin.Context) {
	cc.rc.GetByID(c)
}

// CreateOrUpdateCategory handles POST /categories.
func (cc *CategoryController) CreateOrUpdateCategory(c *gin.Context) {
	cc.rc.CreateOrUpdate(c)
}

// DeleteCategory handles DELETE /categories/:id.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	cc.rc.Delete(c)
}
