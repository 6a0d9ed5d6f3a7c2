package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rb-marketplace/internal/container"
	handlers "github.com/oksasatya/rb-marketplace/internal/interface/http"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

// UserModule wires artist listings, profiles and follows.
// Public: GET /api/users/artists, GET /api/users/:id/profile, GET /api/artists/:id/artworks
// Protected: PATCH /api/users/profile, GET /api/users/purchases, POST /api/users/:id/follow
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	public := rg.Group("/")
	public.Use(middleware.OptionalAuth(m.JWT))
	{
		public.GET("/users/artists", m.Handler.Artists)
		public.GET("/users/:id/profile", m.Handler.Profile)
		public.GET("/artists/:id/artworks", m.Handler.ArtistArtworks)
	}

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.PATCH("/profile", middleware.SanitizeJSON(), m.Handler.UpdateProfile)
		auth.GET("/purchases", m.Handler.Purchases)
		auth.POST("/:id/follow", m.Handler.ToggleFollow)
	}
}
