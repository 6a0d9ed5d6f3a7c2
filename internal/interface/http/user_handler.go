package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/pkg/response"
	"github.com/oksasatya/rb-marketplace/pkg/validation"
)

type UserHandler struct {
	Svc    *app.MarketplaceService
	Logger *logrus.Logger
}

func NewUserHandler(svc *app.MarketplaceService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName       *string `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string `json:"last_name" binding:"omitempty,max=100"`
	ProfileImageURL *string `json:"profile_image_url"`
	Bio             *string `json:"bio" binding:"omitempty,max=1000"`
	Specialization  *string `json:"specialization" binding:"omitempty,max=100"`
	IsArtist        *bool   `json:"is_artist"`
}

// Artists GET /api/users/artists
func (h *UserHandler) Artists(c *gin.Context) {
	list, err := h.Svc.ListArtists()
	if err != nil {
		writeError(c, h.Logger, err, "fetch artists")
		return
	}
	response.Success(c, http.StatusOK, toUserList(list), "artists", nil)
}

// Profile GET /api/users/:id/profile
func (h *UserHandler) Profile(c *gin.Context) {
	p, err := h.Svc.GetArtistProfile(c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err, "fetch profile")
		return
	}
	response.Success(c, http.StatusOK, artistProfileResponse{
		userResponse: toUserResponse(&p.User, false),
		ArtworkCount: p.ArtworkCount,
		IsFollowing:  p.IsFollowing,
	}, "profile", nil)
}

// ArtistArtworks GET /api/artists/:id/artworks
func (h *UserHandler) ArtistArtworks(c *gin.Context) {
	list, err := h.Svc.ListArtworksByArtist(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "fetch artist artworks")
		return
	}
	out := make([]artworkResponse, len(list))
	for i, a := range list {
		out[i] = toArtworkResponse(a)
	}
	response.Success(c, http.StatusOK, out, "artist artworks", nil)
}

// UpdateProfile PATCH /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(middleware.UserID(c), app.ProfileUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
		Bio:             req.Bio,
		Specialization:  req.Specialization,
		IsArtist:        req.IsArtist,
	})
	if err != nil {
		writeError(c, h.Logger, err, "update profile")
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u, true), "profile updated", nil)
}

// Purchases GET /api/users/purchases
func (h *UserHandler) Purchases(c *gin.Context) {
	list, err := h.Svc.ListPurchases(middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err, "fetch purchases")
		return
	}
	out := make([]purchaseResponse, len(list))
	for i, p := range list {
		out[i] = toPurchaseResponse(p)
	}
	response.Success(c, http.StatusOK, out, "purchases", nil)
}

// ToggleFollow POST /api/users/:id/follow
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	following, err := h.Svc.ToggleFollow(middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "toggle follow")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_following": following}, "follow toggled", nil)
}
