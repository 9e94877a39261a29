package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the whole application configuration.
// Populated from environment variables (.env in development).
type Config struct {
	App          AppConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Session      SessionConfig
	Checkout     CheckoutConfig
	Payment      PaymentConfig
	Commerce     CommerceConfig
	PostalLookup PostalLookupConfig
	Jobs         JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string

	AllowedOrigins []string // empty allows any origin
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AdminConfig is the single dashboard account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

type SessionConfig struct {
	CookieDomain string
	CookieSecure bool
	TTL          time.Duration
}

// =====================================================
// CHECKOUT CONFIGURATION
// =====================================================

type CheckoutConfig struct {
	CouponPolicy          string // "revoke" or "sticky"
	FreeShippingThreshold int

	PercentCouponCode     string
	PercentCouponPercent  decimal.Decimal
	PercentCouponMinItems int

	FixedTotalCouponCode  string
	FixedTotalCouponValue decimal.Decimal

	OrderSnapshotTTL time.Duration
}

// =====================================================
// PAYMENT GATEWAY PROXY CONFIGURATION
// =====================================================

type PaymentConfig struct {
	ProxyURL        string
	Timeout         time.Duration
	PixPollInterval time.Duration
	PixExpiry       time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
	UseMockGateway  bool
}

type CommerceConfig struct {
	StorefrontURL   string
	StorefrontToken string
	OrderProxyURL   string
	CatalogCacheTTL time.Duration
	Timeout         time.Duration
}

type PostalLookupConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// JobConfig holds schedules for the worker
type JobConfig struct {
	DailySalesReportCron string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),

			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 8*60), // 8 hours
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@storefront.local"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Session: SessionConfig{
			CookieDomain: getEnv("SESSION_COOKIE_DOMAIN", ""),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", true),
			TTL:          getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		},
		Checkout: CheckoutConfig{
			CouponPolicy:          strings.ToLower(getEnv("COUPON_POLICY", "revoke")),
			FreeShippingThreshold: getEnvInt("FREE_SHIPPING_THRESHOLD", 2),

			PercentCouponCode:     getEnv("PERCENT_COUPON_CODE", "LEVE2"),
			PercentCouponPercent:  getEnvDecimal("PERCENT_COUPON_PERCENT", decimal.NewFromInt(10)),
			PercentCouponMinItems: getEnvInt("PERCENT_COUPON_MIN_ITEMS", 2),

			FixedTotalCouponCode:  getEnv("FIXED_TOTAL_COUPON_CODE", "TESTE1REAL"),
			FixedTotalCouponValue: getEnvDecimal("FIXED_TOTAL_COUPON_VALUE", decimal.NewFromInt(1)),

			OrderSnapshotTTL: getEnvDuration("ORDER_SNAPSHOT_TTL", 24*time.Hour),
		},

		// ========================================
		// PAYMENT GATEWAY PROXY
		// ========================================
		Payment: PaymentConfig{
			ProxyURL:        getEnv("PAYMENT_PROXY_URL", "http://localhost:3001/api"),
			Timeout:         getEnvDuration("PAYMENT_TIMEOUT", 30*time.Second),
			PixPollInterval: getEnvDuration("PIX_POLL_INTERVAL", 5*time.Second),
			PixExpiry:       getEnvDuration("PIX_EXPIRY", 30*time.Minute),
			BreakerFailures: getEnvInt("PAYMENT_BREAKER_FAILURES", 5),
			BreakerTimeout:  getEnvDuration("PAYMENT_BREAKER_TIMEOUT", 30*time.Second),
			UseMockGateway:  getEnvBool("PAYMENT_USE_MOCK", false),
		},
		Commerce: CommerceConfig{
			StorefrontURL:   getEnv("COMMERCE_STOREFRONT_URL", ""),
			StorefrontToken: getEnv("COMMERCE_STOREFRONT_TOKEN", ""),
			OrderProxyURL:   getEnv("ORDER_PROXY_URL", "http://localhost:3001/api"),
			CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			Timeout:         getEnvDuration("COMMERCE_TIMEOUT", 15*time.Second),
		},
		PostalLookup: PostalLookupConfig{
			BaseURL:  getEnv("POSTAL_LOOKUP_URL", "https://viacep.com.br"),
			Timeout:  getEnvDuration("POSTAL_LOOKUP_TIMEOUT", 5*time.Second),
			CacheTTL: getEnvDuration("POSTAL_LOOKUP_CACHE_TTL", 24*time.Hour),
		},
		Jobs: JobConfig{
			DailySalesReportCron: getEnv("JOB_DAILY_SALES_REPORT_CRON", "0 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would make the checkout misbehave
func (c *Config) Validate() error {
	if c.Checkout.CouponPolicy != "revoke" && c.Checkout.CouponPolicy != "sticky" {
		return fmt.Errorf("COUPON_POLICY must be revoke or sticky, got %q", c.Checkout.CouponPolicy)
	}
	if c.Checkout.FreeShippingThreshold < 1 {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD must be positive")
	}
	if p := c.Checkout.PercentCouponPercent; !p.IsPositive() || p.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("PERCENT_COUPON_PERCENT must be in (0, 100], got %s", p)
	}
	if c.Checkout.PercentCouponMinItems < 1 {
		return fmt.Errorf("PERCENT_COUPON_MIN_ITEMS must be positive")
	}
	if !c.Checkout.FixedTotalCouponValue.IsPositive() {
		return fmt.Errorf("FIXED_TOTAL_COUPON_VALUE must be positive, got %s", c.Checkout.FixedTotalCouponValue)
	}
	if c.Payment.PixPollInterval <= 0 {
		return fmt.Errorf("PIX_POLL_INTERVAL must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
		if c.Payment.UseMockGateway {
			return fmt.Errorf("PAYMENT_USE_MOCK cannot be enabled in production")
		}

		if c.Commerce.StorefrontURL == "" {
			fmt.Println("WARNING: COMMERCE_STOREFRONT_URL not set - catalog will not work")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated value, dropping empty entries
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
