package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/rb-marketplace/config"
	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/container"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/identity"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/search"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/internal/router"
	"github.com/oksasatya/rb-marketplace/internal/seed"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
	"github.com/oksasatya/rb-marketplace/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Store
	balance, err := decimal.NewFromString(cfg.DefaultRBBalance)
	if err != nil || balance.IsNegative() {
		logger.Fatalf("invalid DEFAULT_RB_BALANCE %q", cfg.DefaultRBBalance)
	}
	store := memory.New(memory.WithDefaultBalance(balance))

	// Redis (sessions and rate limits)
	if cfg.RedisEnabled {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	} else {
		logger.Warn("redis disabled; sessions are not tracked and rate limits are off")
	}

	// Elasticsearch (optional search index)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.Fatalf("failed to init elasticsearch: %v", err)
		}
		if err := search.NewArtworkIndex(es, cfg.ESArtworksIndex, logger).EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("artwork index unavailable; search falls back to the store")
		}
		container.SetES(es)
	}

	// RabbitMQ email queue, only when mail sending is on
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
	}

	// OIDC identity provider
	if cfg.OIDCIssuerURL != "" {
		v, err := identity.NewOIDCVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			logger.Fatalf("failed to init oidc verifier: %v", err)
		}
		container.SetVerifier(v)
	} else if !cfg.IsDevelopment() {
		logger.Warn("OIDC_ISSUER_URL not set; login is unavailable outside development")
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(store)
	container.SetJWT(jwtManager)

	if cfg.SeedDemo {
		svc := app.NewMarketplaceService(store, container.ArtworkIndex(), nil, cfg, logger)
		if err := seed.Demo(ctx, store, svc, logger); err != nil {
			logger.Fatalf("seed demo data: %v", err)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(middleware.AccessLog(logger))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
