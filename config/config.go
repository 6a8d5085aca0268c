package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Public URL of the console itself, used to build the OAuth2 redirect URL
	BaseURL string
	// Remote APIs
	ResourceServerURL string
	RecruitmentAPIURL string
	ResourceTimeout   time.Duration
	// OAuth2 Authorization Server
	OAuthClientID     string
	OAuthClientSecret string
	OAuthAuthURL      string
	OAuthTokenURL     string
	OAuthScopes       []string
	OAuthJWKSURL      string
	// Session
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	LookupCacheTTL       time.Duration
	// Audit log persistence
	DBUrl        string
	AuditLogToDB bool
	// Uploads
	ClamAVAddress string
	MaxUploadMB   int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	// Tracing
	OTelEndpoint string
	// CORS for the /v1 JSON API
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine outside local development
	_ = godotenv.Load()

	resourceURL := strings.TrimRight(getEnv("RESOURCE_SERVER_URL", "http://127.0.0.1:8080"), "/")

	cfg := &Config{
		Port:     getEnv("PORT", "3000"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		BaseURL:  strings.TrimRight(getEnv("CONSOLE_BASE_URL", "http://127.0.0.1:3000"), "/"),

		ResourceServerURL: resourceURL,
		RecruitmentAPIURL: strings.TrimRight(getEnv("RECRUITMENT_API_URL", resourceURL), "/"),
		ResourceTimeout:   getEnvDuration("RESOURCE_TIMEOUT", 10*time.Second),

		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", "recruitment-console"),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		OAuthAuthURL:      getEnv("OAUTH_AUTH_URL", resourceURL+"/oauth2/authorize"),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", resourceURL+"/oauth2/token"),
		OAuthScopes:       getEnvList("OAUTH_SCOPES", []string{"openid", "profile"}),
		OAuthJWKSURL:      getEnv("OAUTH_JWKS_URL", ""),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 12*time.Hour),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		LookupCacheTTL:       getEnvDuration("LOOKUP_CACHE_TTL", 5*time.Minute),

		DBUrl:        getEnv("DATABASE_URL", ""),
		AuditLogToDB: getEnvBool("AUDIT_LOG_TO_DB", true),

		ClamAVAddress: getEnv("CLAMAV_ADDRESS", ""),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 10),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),

		OTelEndpoint: getEnv("OTEL_ENDPOINT", ""),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", nil),
	}

	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET is missing. Identity cookies are signed with an insecure development key.")
		cfg.SessionSecret = "insecure-development-session-secret"
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Sessions, lookup cache and rate limiting stay in memory.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedirectURL is the OAuth2 callback served by the console.
func (c *Config) RedirectURL() string {
	return c.BaseURL + "/postlogin"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("30s", "12h")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
