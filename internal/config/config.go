package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Auth    AuthConfig
	Payment PaymentConfig
	SMTP    SMTPConfig
	Cart    CartConfig
}

type HTTPConfig struct {
	Addr    string
	BaseURL string
}

type DBConfig struct {
	DSN string
}

type AuthConfig struct {
	JWTSecret []byte
	TokenTTL  time.Duration
}

type PaymentConfig struct {
	// Provider selects the gateway adapter: "stripe" or "mock".
	Provider            string
	Currency            string
	StripeSecretKey     string
	StripeWebhookSecret string
	MockWebhookSecret   string
}

type SMTPConfig struct {
	Host          string
	Port          string
	Username      string
	Password      string
	From          string
	FromName      string
	TLSMode       string // "none" | "starttls" | "tls"
	SkipVerifyTLS bool
}

type CartConfig struct {
	CookieName   string
	CookieSecret []byte
	Secure       bool
}

// Load reads configuration from the environment. main loads .env first via
// godotenv so local dev works without exporting anything.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr:    getenv("HTTP_ADDR", ":8080"),
			BaseURL: getenv("BASE_URL", "http://localhost:8080"),
		},
		DB: DBConfig{
			DSN: os.Getenv("DB_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret: []byte(os.Getenv("JWT_SECRET")),
			TokenTTL:  getdur("JWT_TTL", 24*time.Hour),
		},
		Payment: PaymentConfig{
			Provider:            getenv("PAYMENT_PROVIDER", "mock"),
			Currency:            getenv("PAYMENT_CURRENCY", "USD"),
			StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			MockWebhookSecret:   os.Getenv("MOCK_WEBHOOK_SECRET"),
		},
		SMTP: SMTPConfig{
			Host:          getenv("SMTP_HOST", ""),
			Port:          getenv("SMTP_PORT", "587"),
			Username:      os.Getenv("SMTP_USERNAME"),
			Password:      os.Getenv("SMTP_PASSWORD"),
			From:          getenv("SMTP_FROM", "no-reply@localhost"),
			FromName:      getenv("SMTP_FROM_NAME", "You&Only"),
			TLSMode:       getenv("SMTP_TLS_MODE", "starttls"),
			SkipVerifyTLS: getbool("SMTP_SKIP_VERIFY_TLS", false),
		},
		Cart: CartConfig{
			CookieName:   getenv("CART_COOKIE_NAME", "yo_cart"),
			CookieSecret: []byte(getenv("CART_COOKIE_SECRET", "dev-cart-secret")),
			Secure:       getbool("COOKIE_SECURE", false),
		},
	}

	if cfg.DB.DSN == "" {
		return Config{}, fmt.Errorf("config: DB_DSN is required")
	}
	if len(cfg.Auth.JWTSecret) == 0 {
		return Config{}, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.Payment.Provider == "stripe" && cfg.Payment.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("config: STRIPE_SECRET_KEY is required for the stripe provider")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getdur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
