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

// VerificationController handles supplier verification review endpoints.
type VerificationController struct {
	client  backend.Client
	center  *notify.Center
	service *ResourceService[domain.Verification]
}

func NewVerificationController(client backend.Client, center *notify.Center, opts fetch.Options) *VerificationController {
	return &VerificationController{
		client:  client,
		center:  center,
		service: NewResourceService[domain.Verification]("verification", "/verifications", client, center, opts),
	}
}

// ListVerifications handles GET /verifications.
func (vc *VerificationController) ListVerifications(c *gin.Context) {
	items, err := vc.service.List(c.Request.Context(), forceRefresh(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type reviewRequest struct {
	Note string `json:"note"`
}

// Approve handles POST /verifications/:id/approve.
func (vc *VerificationController) Approve(c *gin.Context) {
	vc.review(c, "approve", "Verification approved")
}

// Reject handles POST /verifications/:id/reject.
func (vc *VerificationController) Reject(c *gin.Context) {
	vc.review(c, "reject", "Verification rejected")
}

func (vc *VerificationController) review(c *gin.Context, action, successMsg string) {
	id := c.Param("id")
	var req reviewRequest
	// Note is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&req)

	var updated domain.Verification
	if err := vc.client.Post(c.Request.Context(), "/verifications/"+id+"/"+action, req, &updated); err != nil {
		logger.WithComponent("verification-controller").Warnf("%s for %s failed: %v", action, id, err)
		vc.center.Error(backend.Humanize(err))
		respondError(c, err)
		return
	}

	vc.service.Invalidate()
	vc.center.Success(successMsg)
	c.JSON(http.StatusOK, updated)
}
