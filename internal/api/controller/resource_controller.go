package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bazaarhq/adminapi/internal/logger"
)

// ResourceController provides generic handlers over a cached resource service.
type ResourceController[T any] struct {
	Service   *ResourceService[T]
	Validator *validator.Validate
}

// NewResourceController wires a controller around the given service.
func NewResourceController[T any](service *ResourceService[T]) *ResourceController[T] {
	return &ResourceController[T]{
		Service:   service,
		Validator: validator.New(),
	}
}

// List handles GET requests for the collection. ?refresh=true bypasses the
// cache; otherwise a fresh cached list is served without a backend call.
func (rc *ResourceController[T]) List(c *gin.Context) {
	items, err := rc.Service.List(c.Request.Context(), forceRefresh(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetByID handles GET requests for a single item.
func (rc *ResourceController[T]) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing resource id"})
		return
	}
	item, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateOrUpdate handles POST requests to create or update an item.
func (rc *ResourceController[T]) CreateOrUpdate(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if rc.Validator != nil {
		if err := rc.Validator.Struct(item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	saved, err := rc.Service.Save(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE requests to remove an item by id.
func (rc *ResourceController[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		logger.WithComponent("resource-controller").Debugf("delete: missing id parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing resource id"})
		return
	}
	if err := rc.Service.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
