package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
	"github.com/oksasatya/rb-marketplace/pkg/response"
	"github.com/oksasatya/rb-marketplace/pkg/validation"
)

type AuthHandler struct {
	Svc     *app.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *app.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// loginRequest takes an OIDC id_token, or the raw claims when the
// development login is enabled.
type loginRequest struct {
	IDToken         string `json:"id_token" binding:"required_without=Sub"`
	Sub             string `json:"sub"`
	Email           string `json:"email" binding:"omitempty,email"`
	FirstName       string `json:"first_name" binding:"max=100"`
	LastName        string `json:"last_name" binding:"max=100"`
	ProfileImageURL string `json:"profile_image_url"`
}

func tokenMeta(pair app.TokenPair) map[string]any {
	return map[string]any{
		"access_token":       pair.AccessToken,
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := app.LoginInput{IDToken: req.IDToken}
	if req.Sub != "" {
		in.Identity = &entity.Identity{
			Subject:         req.Sub,
			Email:           req.Email,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ProfileImageURL: req.ProfileImageURL,
		}
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err, "login")
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, toUserResponse(u, true), "login successful", tokenMeta(pair))
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", tokenMeta(pair))
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.Logger.WithError(err).Warn("drop session failed")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// Me GET /api/auth/user
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.CurrentUser(middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err, "fetch user")
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u, true), "current user", nil)
}
