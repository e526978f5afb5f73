package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	RedisAddr       string
	SessionSecret   string
	SessionTTLHours int
	RateLimitPerMin int
	RabbitURL       string
	RabbitExchange  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	OAuthStateSecret   string

	AdminEmails    []string
	TrustedProxies []string
	CookieSecure   bool
	LogDev         bool
	DDEnabled      bool
	DDService      string
}

// Load reads the process environment. A .env file in the working directory,
// if present, is applied first without overriding variables already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("APP_PORT", "8080"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "markpad"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		SessionSecret:   getenv("SESSION_SECRET", "default_secret_key"),
		SessionTTLHours: atoi(getenv("SESSION_TTL_HOURS", "168")),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "60")),
		RabbitURL:       getenv("RABBIT_URL", ""),
		RabbitExchange:  getenv("RABBIT_EXCHANGE", "markpad.events"),

		GoogleClientID:     getenv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		OAuthStateSecret:   getenv("OAUTH_STATE_SECRET", "default_state_key"),

		AdminEmails:    splitList(getenv("ADMIN_EMAILS", "")),
		TrustedProxies: splitList(getenv("TRUSTED_PROXIES", "")),
		CookieSecure:   atob(getenv("COOKIE_SECURE", "false")),
		LogDev:         atob(getenv("LOG_DEV", "false")),
		DDEnabled:      atob(getenv("DD_ENABLED", "false")),
		DDService:      getenv("DD_SERVICE", "markpad"),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func atob(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
