package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("GROQ_MODEL", "")

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.GroqModel)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 4.99, cfg.PriceSingleDownload)
	assert.Equal(t, 19.99, cfg.PricePremium)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "abroad",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal user=app password=secret dbname=abroad port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}

func TestAdminEmailSet(t *testing.T) {
	t.Run("splits, trims and lower-cases", func(t *testing.T) {
		cfg := &Config{AdminEmails: "Ops@Example.com , second@example.com,,"}
		set := cfg.AdminEmailSet()
		assert.Len(t, set, 2)
		assert.Contains(t, set, "ops@example.com")
		assert.Contains(t, set, "second@example.com")
	})

	t.Run("empty config yields empty set", func(t *testing.T) {
		cfg := &Config{}
		assert.Empty(t, cfg.AdminEmailSet())
	})
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{AdminEmails: "ops@example.com"}

	assert.True(t, cfg.IsAdminEmail("ops@example.com"))
	assert.True(t, cfg.IsAdminEmail("  OPS@Example.COM "))
	assert.False(t, cfg.IsAdminEmail("else@example.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, 90*time.Second, parseDuration("90s"))
	assert.Equal(t, 15*time.Minute, parseDuration("not-a-duration"))
}
