package router

import (
	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/container"
	handlers "github.com/oksasatya/rb-marketplace/internal/interface/http"
	"github.com/oksasatya/rb-marketplace/internal/router/modules"
)

type MarketplaceDeps struct {
	Service        *app.MarketplaceService
	ArtworkHandler *handlers.ArtworkHandler
	UserHandler    *handlers.UserHandler
}

type AuthDeps struct {
	Service *app.AuthService
	Handler *handlers.AuthHandler
}

func buildMarketplaceDeps() MarketplaceDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	service := app.NewMarketplaceService(
		container.GetStore(),
		container.ArtworkIndex(),
		container.Publisher(),
		cfg,
		logger,
	)

	return MarketplaceDeps{
		Service:        service,
		ArtworkHandler: handlers.NewArtworkHandler(service, logger),
		UserHandler:    handlers.NewUserHandler(service, logger),
	}
}

func buildAuthDeps() AuthDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	// Raw-claims login is only accepted in development without an issuer.
	service := app.NewAuthService(
		container.GetStore(),
		container.GetJWT(),
		container.GetRedis(),
		container.Verifier(),
		cfg.IsDevelopment(),
		logger,
	)

	handler := handlers.NewAuthHandler(service, logger, cfg.CookieDomain, cfg.CookieSecure)
	return AuthDeps{Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	market := buildMarketplaceDeps()
	auth := buildAuthDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(auth.Handler, jwt))
	r.Add(modules.NewArtworkModule(market.ArtworkHandler, jwt))
	r.Add(modules.NewUserModule(market.UserHandler, jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
