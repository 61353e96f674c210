// Package config assembles the process configuration from the environment
// so main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"campus/internal/langpref"
)

// Config is everything the server needs to start.
type Config struct {
	Addr string

	DatabaseURL string
	RedisURL    string

	KafkaBrokers    []string
	KafkaAuditTopic string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	DefaultLanguage string
	LanguagesFile   string
	Selector        langpref.SelectorSettings

	AuditBuffer int

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// FromEnv builds a Config from environment variables. Unset values fall back
// to development defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("CAMPUS_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaAuditTopic: envOr("KAFKA_AUDIT_TOPIC", "campus.config-audit"),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       envOr("JWT_ISSUER", "campus"),
		JWTAudience:     envOr("JWT_AUDIENCE", "campus-api"),
		DefaultLanguage: envOr("DEFAULT_LANGUAGE", "en"),
		LanguagesFile:   envOr("LANGUAGES_FILE", "languages.yaml"),
		AuditBuffer:     envInt("AUDIT_BUFFER", 256),

		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	cfg.Selector = langpref.SelectorSettings{
		HeaderEnabled: envBool("HEADER_LANGUAGE_SELECTOR"),
		FooterEnabled: envBool("FOOTER_LANGUAGE_SELECTOR"),
		// Deprecated spelling of the header toggle, still honored.
		ShowLanguageSelector: envBool("SHOW_LANGUAGE_SELECTOR"),
	}

	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string) bool {
	return os.Getenv(key) == "true"
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
