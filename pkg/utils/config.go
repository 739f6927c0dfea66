package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Store        StoreConfig
	Catalog      CatalogConfig
	Stripe       StripeConfig
	Relay        RelayConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
	HTTP         HTTPConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	BusinessName   string
	AllowedOrigins []string
	// TrustProxy honours X-Forwarded-For / X-Real-IP. Only set it behind a
	// proxy that overwrites those headers.
	TrustProxy bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

// StoreConfig selects where confirmed bookings are written.
type StoreConfig struct {
	Driver string // postgres | memory
}

// CatalogConfig optionally replaces the built-in price list with a YAML file.
type CatalogConfig struct {
	File string
}

type StripeConfig struct {
	SecretKey                 string
	PublishableKey            string
	Currency                  string
	StatementDescriptorSuffix string
	APIURL                    string
}

type RelayConfig struct {
	URL       string
	AccessKey string
	ToEmail   string
}

type NotificationConfig struct {
	Endpoint      string
	APIKey        string
	InternalEmail string
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	ClientTimeout   time.Duration
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "homecare-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BUSINESS_NAME", "All Care Home Services")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("TRUST_PROXY", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("BOOKING_STORE", StoreDriverPostgres)
	viper.SetDefault("STRIPE_CURRENCY", "cad")
	viper.SetDefault("STRIPE_STATEMENT_DESCRIPTOR_SUFFIX", "ALL CARE HOME")
	viper.SetDefault("SILENTFORMS_URL", "https://api.silentforms.com/v1/submissions")
	viper.SetDefault("CONTACT_TO_EMAIL", "allcarerepairservices@outlook.com")
	viper.SetDefault("NOTIFY_INTERNAL_EMAIL", "allcarerepairservices@outlook.com")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("HTTP_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SHUTDOWN_TIMEOUT", "5s")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "15s")

	// A missing .env is fine in containers, everything can come from the environment.
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			BusinessName:   viper.GetString("BUSINESS_NAME"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(viper.GetString("BOOKING_STORE")),
		},
		Catalog: CatalogConfig{
			File: viper.GetString("CATALOG_FILE"),
		},
		Stripe: StripeConfig{
			SecretKey:                 viper.GetString("STRIPE_SECRET_KEY"),
			PublishableKey:            viper.GetString("STRIPE_PUBLISHABLE_KEY"),
			Currency:                  strings.ToLower(viper.GetString("STRIPE_CURRENCY")),
			StatementDescriptorSuffix: viper.GetString("STRIPE_STATEMENT_DESCRIPTOR_SUFFIX"),
			APIURL:                    viper.GetString("STRIPE_API_URL"),
		},
		Relay: RelayConfig{
			URL:       viper.GetString("SILENTFORMS_URL"),
			AccessKey: viper.GetString("SILENTFORMS_ACCESS_KEY"),
			ToEmail:   viper.GetString("CONTACT_TO_EMAIL"),
		},
		Notification: NotificationConfig{
			Endpoint:      viper.GetString("EMAIL_ENDPOINT"),
			APIKey:        viper.GetString("EMAIL_API_KEY"),
			InternalEmail: viper.GetString("NOTIFY_INTERNAL_EMAIL"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:     viper.GetInt("RATE_LIMIT_BURST"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     viper.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    viper.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: viper.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
			ClientTimeout:   viper.GetDuration("HTTP_CLIENT_TIMEOUT"),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
