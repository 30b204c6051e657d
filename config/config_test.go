package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "catalog-backoffice", cfg.AppName)
	assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "admin.events", cfg.RabbitMQEventsQueue)
	assert.Equal(t, "products", cfg.ESProductsIndex)
}

func TestLoadOverridesAndInvalidValues(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, int64(1024), cfg.UploadMaxBytes)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestPostgresDSNEscapesPassword(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "p@ss:word", DBHost: "db", DBPort: "5432", DBName: "backoffice", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/backoffice?sslmode=disable", cfg.PostgresDSN())
}

func TestTrustedProxyList(t *testing.T) {
	cfg := &Config{}
	assert.Nil(t, cfg.TrustedProxyList())

	cfg.TrustedProxies = "10.0.0.0/8, 192.0.2.1"
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.TrustedProxyList())
}
