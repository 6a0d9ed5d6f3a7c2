package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rb-marketplace/internal/container"
	handlers "github.com/oksasatya/rb-marketplace/internal/interface/http"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

// AuthModule
// Public: POST /api/auth/login, POST /api/auth/refresh
// Protected: GET /api/auth/user, POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil) // 60 req/min per IP

	// id_token is an opaque JWT and must reach the verifier untouched
	rg.POST("/auth/login", loginLimiter, middleware.SanitizeJSON("id_token"), m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("/user", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
	}
}
