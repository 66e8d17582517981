package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/domain"
	"github.com/bazaarhq/adminapi/internal/fetch"
	"github.com/bazaarhq/adminapi/internal/logger"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// ProfileController serves the admin's own account record through a single
// cached resource. Reads go through the TTL cache; a full update replaces the
// cached profile with the server response, while preference and password
// changes only touch their own slice of the cached value.
type ProfileController struct {
	client    backend.Client
	center    *notify.Center
	validator *validator.Validate
	res       *fetch.Resource[domain.Profile]
}

func NewProfileController(client backend.Client, center *notify.Center, opts fetch.Options) *ProfileController {
	load := func(ctx context.Context) (domain.Profile, error) {
		var p domain.Profile
		err := client.Get(ctx, "/profile", &p)
		return p, err
	}
	return &ProfileController{
		client:    client,
		center:    center,
		validator: validator.New(),
		res:       fetch.NewResource[domain.Profile]("profile", load, center, opts),
	}
}

// GetProfile handles GET /profile. ?refresh=true bypasses the cache.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.res.Get(c.Request.Context(), forceRefresh(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile. The server response replaces the cached
// profile wholesale.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var input domain.Profile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := pc.validator.Struct(input); err != nil {
		logger.WithComponent("profile-controller").Debugf("validation failed: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": backend.MsgValidation})
		return
	}

	updated, err := pc.res.Update(c.Request.Context(), "Profile updated successfully", func(ctx context.Context) (domain.Profile, error) {
		var out domain.Profile
		err := pc.client.Put(ctx, "/profile", input, &out)
		return out, err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdatePreferences handles PATCH /profile/preferences. Only the preference
// fields carried by the patch are written onto the cached profile.
func (pc *ProfileController) UpdatePreferences(c *gin.Context) {
	var patch domain.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := pc.res.Mutate(c.Request.Context(), "Preferences updated",
		func(ctx context.Context) error {
			return pc.client.Patch(ctx, "/profile/preferences", patch, nil)
		},
		func(p *domain.Profile) {
			patch.ApplyTo(&p.Preferences)
		})
	if err != nil {
		respondError(c, err)
		return
	}

	// When the cache was cold the patch had nothing to apply to; Get loads
	// the post-patch profile. On a warm cache it returns the patched value.
	profile, err := pc.res.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword handles PUT /profile/password. The password never lives in
// the cached profile, so nothing is applied on success.
func (pc *ProfileController) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	err := pc.res.Mutate(c.Request.Context(), "Password changed successfully",
		func(ctx context.Context) error {
			return pc.client.Put(ctx, "/profile/password", req, nil)
		}, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
