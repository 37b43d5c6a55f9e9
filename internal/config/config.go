package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvProduction is the deploy environment name that switches the service
// into production behavior (masked submission logs).
const EnvProduction = "production"

// insecureJWTSecret is the placeholder secret found in sample env files.
const insecureJWTSecret = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Site      SiteConfig
	Contact   ContactConfig
	RateLimit RateLimitConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	RequestTimeoutSeconds int
	// ProxyHeader names the header carrying the client IP when the service
	// runs behind a CDN or load balancer, e.g. X-Forwarded-For.
	ProxyHeader    string
	TrustedProxies []string
}

// SiteConfig holds values shared with the public website.
type SiteConfig struct {
	URL         string
	AnalyticsID string
}

// ContactConfig drives the contact submission pipeline and its integrations.
type ContactConfig struct {
	RecipientEmail      string
	FromEmail           string
	EmailService        string
	EmailAPIKey         string
	CRMWebhookURL       string
	ProcessingLatencyMS int
}

// RateLimitConfig configures the fixed window limiter on the contact endpoint.
type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
	Backend       string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines admin authentication parameters.
type AuthConfig struct {
	AdminEmail            string
	AdminPasswordHash     string
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := strings.ToLower(getEnv("RATE_LIMIT_BACKEND", "memory"))
	if backend != "memory" && backend != "redis" {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BACKEND %q: want memory or redis", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "Corazor Technology Website"),
			Env:                   getEnv("NEXT_PUBLIC_DEPLOY_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			ProxyHeader:           os.Getenv("HTTP_PROXY_HEADER"),
			TrustedProxies:        getEnvAsList("HTTP_TRUSTED_PROXIES"),
		},
		Site: SiteConfig{
			URL:         strings.TrimRight(getEnv("NEXT_PUBLIC_SITE_URL", "https://corazor.com"), "/"),
			AnalyticsID: os.Getenv("NEXT_PUBLIC_ANALYTICS_ID"),
		},
		Contact: ContactConfig{
			RecipientEmail:      getEnv("CONTACT_FORM_EMAIL", "contact@corazor.com"),
			FromEmail:           getEnv("CONTACT_FORM_FROM", "Corazor Website <onboarding@resend.dev>"),
			EmailService:        strings.ToLower(os.Getenv("CONTACT_FORM_SERVICE")),
			EmailAPIKey:         os.Getenv("CONTACT_FORM_API_KEY"),
			CRMWebhookURL:       os.Getenv("CRM_WEBHOOK_URL"),
			ProcessingLatencyMS: getEnvAsInt("CONTACT_PROCESSING_LATENCY_MS", 500),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", false),
			MaxRequests:   getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 5),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
			Backend:       backend,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AdminEmail:            getEnv("ADMIN_EMAIL", "admin@corazor.com"),
			AdminPasswordHash:     os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == "redis" && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_ADDR")
	}

	if cfg.Auth.AdminEnabled() && (cfg.Auth.JWTSecret == "" || cfg.Auth.JWTSecret == insecureJWTSecret) {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH requires a non-default AUTH_JWT_SECRET")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the deploy environment is production.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, EnvProduction)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ProcessingLatency is the artificial delay applied to accepted submissions.
func (c ContactConfig) ProcessingLatency() time.Duration {
	if c.ProcessingLatencyMS <= 0 {
		return 0
	}
	return time.Duration(c.ProcessingLatencyMS) * time.Millisecond
}

// EmailEnabled reports whether notification emails can be sent.
func (c ContactConfig) EmailEnabled() bool {
	return c.EmailService == "resend" && c.EmailAPIKey != ""
}

// AdminEnabled reports whether the admin API is served. Without a password
// hash nobody can log in, so the routes are not registered at all.
func (a AuthConfig) AdminEnabled() bool {
	return a.AdminPasswordHash != ""
}

// Window returns the limiter window length.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
