package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rb-marketplace/config"
	app "github.com/oksasatya/rb-marketplace/internal/application"
	repo "github.com/oksasatya/rb-marketplace/internal/domain/repository"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/identity"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/search"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.
// Optional components (Redis, RabbitMQ, Elasticsearch, OIDC) stay nil when
// they are not configured.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	store       repo.MarketplaceStore

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
	verifier  *identity.OIDCVerifier
)

func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetStore(s repo.MarketplaceStore)        { store = s }
func GetStore() repo.MarketplaceStore         { return store }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetVerifier(v *identity.OIDCVerifier)    { verifier = v }
func SetConfig(c *config.Config)              { cfg = c }
func SetLogger(l *logrus.Logger)              { logger = l }

func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return logger
}

func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

// Publisher returns the email queue publisher, or nil when RabbitMQ is off.
func Publisher() app.Publisher {
	if rabbitPub == nil {
		return nil
	}
	return rabbitPub
}

// ArtworkIndex returns the search index, or nil when Elasticsearch is off.
func ArtworkIndex() app.ArtworkIndex {
	if esClient == nil {
		return nil
	}
	return search.NewArtworkIndex(esClient, GetConfig().ESArtworksIndex, GetLogger())
}

// Verifier returns the OIDC verifier, or nil when no issuer is configured.
func Verifier() app.IdentityVerifier {
	if verifier == nil {
		return nil
	}
	return verifier
}

// Reset clears every component. Tests use it between runs.
func Reset() {
	cfg, logger, redisClient, store = nil, nil, nil, nil
	jwtManager, rabbitPub, esClient, verifier = nil, nil, nil, nil
}
