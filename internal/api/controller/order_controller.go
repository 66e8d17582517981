package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/fetch"
	"github.com/bazaarhq/adminapi/internal/logger"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// OrderController handles order endpoints. Orders are read-only from the
// panel except for status transitions.
type OrderController struct {
	client  backend.Client
	center  *notify.Center
	service *ResourceService[domain.Order]
}

// NewOrderController creates a controller for the /orders collection.
func NewOrderController(client backend.Client, center *notify.Center, opts fetch.Options) *OrderController {
	return &OrderController{
		client:  client,
		center:  center,
		service: NewResourceService[domain.Order]("order", "/orders", client, center, opts),
	}
}

// ListOrders handles GET /orders.
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.service.List(c.Request.Context(), forceRefresh(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PUT /orders/:id/status. The backend enforces
// the transition rules; on success the cached list is invalidated.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var updated domain.Order
	if err := oc.client.Put(c.Request.Context(), "/orders/"+id+"/status", req, &updated); err != nil {
		logger.WithComponent("order-controller").Warnf("status update for %s failed: %v", id, err)
		oc.center.Error(backend.Humanize(err))
		respondError(c, err)
		return
	}

	oc.service.Invalidate()
	oc.center.Success("Order status updated")
	c.JSON(http.StatusOK, updated)
}
