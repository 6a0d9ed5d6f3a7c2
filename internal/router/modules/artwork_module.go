package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rb-marketplace/internal/container"
	handlers "github.com/oksasatya/rb-marketplace/internal/interface/http"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

type ArtworkModule struct {
	Handler *handlers.ArtworkHandler
	JWT     *helpers.JWTManager
}

func NewArtworkModule(h *handlers.ArtworkHandler, jwt *helpers.JWTManager) *ArtworkModule {
	return &ArtworkModule{Handler: h, JWT: jwt}
}

func (m *ArtworkModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)

	public := rg.Group("/")
	public.Use(middleware.OptionalAuth(m.JWT))
	{
		public.GET("/artworks", m.Handler.List)
		public.GET("/artworks/search", searchLimiter, m.Handler.Search)
		public.GET("/artworks/:id", m.Handler.Get)
		public.GET("/artworks/:id/comments", m.Handler.Comments)
	}

	auth := rg.Group("/artworks")
	purchasePath := auth.BasePath() + "/:id/purchase"
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		// Purchases are counted only by their own limiter below
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPaths(purchasePath)),
	)
	{
		auth.POST("", middleware.SanitizeJSON(), m.Handler.Create)
		auth.POST("/:id/like", m.Handler.ToggleLike)
		auth.POST("/:id/comments", middleware.SanitizeJSON(), m.Handler.AddComment)
		// Purchases get a tighter per-user budget
		auth.POST("/:id/purchase",
			middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserIDAndPath(), nil),
			m.Handler.Purchase,
		)
	}
}
