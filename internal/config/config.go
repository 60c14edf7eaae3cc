package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// AI provider (OpenAI-compatible chat completions)
	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string
	AITimeout  time.Duration

	// Admin allow-list: emails promoted to ADMIN at profile creation/login
	AdminEmails string

	// Paywall price points (advertised in 402 responses, not charged here)
	PriceSingleDownload float64
	PricePremium        float64

	// Redis (optional, assistant corpus cache)
	RedisAddr     string
	RedisPassword string
	CorpusCacheTTL time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "abroad_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		GroqAPIKey: getEnv("GROQ_API_KEY", ""),
		GroqAPIURL: getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:  getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		AITimeout:  parseDuration(getEnv("AI_TIMEOUT", "60s")),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		PriceSingleDownload: parseFloat(getEnv("PRICE_SINGLE_DOWNLOAD", "4.99")),
		PricePremium:        parseFloat(getEnv("PRICE_PREMIUM", "19.99")),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		CorpusCacheTTL: parseDuration(getEnv("CORPUS_CACHE_TTL", "5m")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// AdminEmailSet returns the configured admin emails, lower-cased.
func (c *Config) AdminEmailSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range strings.Split(c.AdminEmails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// IsAdminEmail reports whether email is on the configured allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	_, ok := c.AdminEmailSet()[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
