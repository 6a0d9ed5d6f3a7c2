package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAIL_SEND_ENABLED", "")
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "1250.00", cfg.DefaultRBBalance)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, "artworks", cfg.ESArtworksIndex)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("SEED_DEMO", "not-a-bool")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200, http://es2:9200,")
	cfg := Load()

	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.False(t, cfg.SeedDemo, "invalid bool falls back to default")
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}

func TestCORSOrigins_Empty(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " , "}
	assert.Empty(t, c.CORSOrigins())
}
