package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	// BaseURL is the public storefront origin used to build checkout return
	// URLs and sign-in redirects.
	BaseURL string

	AuthCookieSecure bool
	GeoCountryHeader string
	DefaultCountry   string

	BackendURL    string
	BackendAPIKey string

	StripeSecretKey string

	EmailHost    string
	EmailPort    int
	EmailUser    string
	EmailPass    string
	EmailDefault string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "checkout"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		BaseURL:          strings.TrimRight(getenv("BASE_URL", "http://localhost:3000"), "/"),
		AuthCookieSecure: authCookieSecure,
		GeoCountryHeader: getenv("GEO_COUNTRY_HEADER", "X-Vercel-IP-Country"),
		DefaultCountry:   getenv("DEFAULT_COUNTRY", "US"),
		BackendURL:       strings.TrimRight(getenv("BACKEND_URL", "http://localhost:1337"), "/"),
		BackendAPIKey:    strings.TrimSpace(getenv("BACKEND_API_KEY", "")),
		StripeSecretKey:  strings.TrimSpace(getenv("STRIPE_SECRET_KEY", "")),
		EmailHost:        getenv("EMAIL_HOST", ""),
		EmailPort:        int(getenvInt64("EMAIL_PORT", 2525)),
		EmailUser:        getenv("EMAIL_USER", ""),
		EmailPass:        getenv("EMAIL_PASS", ""),
		EmailDefault:     getenv("EMAIL_DEFAULT", ""),
	}

	return cfg
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewCatalogConfigHolder),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
