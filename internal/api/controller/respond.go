package controller

import (
	"net/http"

	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/adminapi/internal/backend"
)

// respondError maps a structured backend error onto an HTTP response.
// The error kind decides the status; the body carries the human-readable
// message plus the per-field map for validation failures.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errdefs.IsNotFound(err):
		status = http.StatusNotFound
	case errdefs.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case errdefs.IsPermissionDenied(err):
		status = http.StatusForbidden
	case errdefs.IsInvalidArgument(err):
		status = http.StatusUnprocessableEntity
	case errdefs.IsFailedPrecondition(err):
		status = http.StatusConflict
	case errdefs.IsUnavailable(err):
		status = http.StatusBadGateway
	}

	body := gin.H{"error": backend.Humanize(err)}
	if fields := backend.FieldErrors(err); len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(status, body)
}

// forceRefresh reports whether the request asked to bypass the cache.
func forceRefresh(c *gin.Context) bool {
	return c.Query("refresh") == "true"
}
