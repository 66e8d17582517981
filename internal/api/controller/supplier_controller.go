package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/fetch"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// SupplierController handles supplier endpoints via the generic resource controller.
type SupplierController struct {
	rc *ResourceController[domain.Supplier]
}

// NewSupplierController creates a controller for the /suppliers collection.
func NewSupplierController(client backend.Client, center *notify.Center, opts fetch.Options) *SupplierController {
	service := NewResourceService[domain.Supplier]("supplier", "/suppliers", client, center, opts)
	return &SupplierController{rc: NewResourceController(service)}
}

// ListSuppliers handles GET /suppliers.
func (sc *SupplierController) ListSuppliers(c *gin.Context) {
	sc.rc.List(c)
}

// GetSupplier handles GET /suppliers/:id.
func (sc *SupplierController) GetSupplier(c *gin.Context) {
	sc.rc.GetByID(c)
}

// CreateOrUpdateSupplier handles POST /suppliers.
func (sc *SupplierController) CreateOrUpdateSupplier(c *gin.Context) {
	sc.rc.CreateOrUpdate(c)
}

// DeleteSupplier handles DELETE /suppliers/:id.
func (sc *SupplierController) DeleteSupplier(c *gin.Context) {
	sc.rc.Delete(c)
}
