package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/tarzi-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	ShippingThreshold = "threshold"
	ShippingFlat      = "flat"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort int

	CartStore   string
	CartDir     string
	CartTTL     time.Duration
	RedisURL    string
	RedisAddr   string
	DatabaseURL string

	OrderAPIURL           string
	OrderAPITimeout       time.Duration
	OrderAPIRetries       int
	OrderAPIRetryInterval time.Duration
	JWTSecret             string

	Currency          currency.Unit
	ShippingPolicy    string
	ShippingFee       decimal.Decimal
	ShippingThreshold decimal.Decimal
	TaxRate           decimal.Decimal

	// DotEnvMissing is set by Load when there was no .env file to read.
	DotEnvMissing bool
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	missing := false
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("godotenv.Load: %w", err)
		}
		missing = true
	}

	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.DotEnvMissing = missing

	return cfg, nil
}

func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		HTTPPort:              getEnvInt("HTTP_PORT", 8080, &errs),
		CartStore:             strings.ToLower(getEnv("CART_STORE", StoreFile)),
		CartDir:               getEnv("CART_DIR", "./data/carts"),
		CartTTL:               getEnvDuration("CART_TTL", 0, &errs),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		OrderAPIURL:           getEnv("ORDER_API_URL", "http://localhost:5000/api"),
		OrderAPITimeout:       getEnvDuration("ORDER_API_TIMEOUT", 15*time.Second, &errs),
		OrderAPIRetries:       getEnvInt("ORDER_API_RETRIES", 2, &errs),
		OrderAPIRetryInterval: getEnvDuration("ORDER_API_RETRY_INTERVAL", 200*time.Millisecond, &errs),
		JWTSecret:             getEnv("JWT_SECRET", ""),

		ShippingPolicy:    strings.ToLower(getEnv("SHIPPING_POLICY", ShippingThreshold)),
		ShippingFee:       getEnvDecimal("SHIPPING_FEE", "50", &errs),
		ShippingThreshold: getEnvDecimal("SHIPPING_THRESHOLD", "1000", &errs),
		TaxRate:           getEnvDecimal("TAX_RATE", "0.14", &errs),
	}

	unit, err := currency.ParseISO(getEnv("CURRENCY", "EGP"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CURRENCY: %w", err))
	}
	cfg.Currency = unit

	switch cfg.CartStore {
	case StoreFile, StoreRedis:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for CART_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("CART_STORE[%s] is not one of file, redis, postgres", cfg.CartStore))
	}

	switch cfg.ShippingPolicy {
	case ShippingThreshold, ShippingFlat:
	default:
		errs = append(errs, fmt.Errorf("SHIPPING_POLICY[%s] is not one of threshold, flat", cfg.ShippingPolicy))
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	if cfg.OrderAPIRetries < 0 {
		errs = append(errs, fmt.Errorf("ORDER_API_RETRIES[%d] must not be negative", cfg.OrderAPIRetries))
	}

	if cfg.TaxRate.IsNegative() || cfg.ShippingFee.IsNegative() {
		errs = append(errs, errors.New("TAX_RATE and SHIPPING_FEE must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Shipping() domain.ShippingPolicy {
	if c.ShippingPolicy == ShippingFlat {
		return domain.FlatShipping{Fee: c.ShippingFee}
	}

	return domain.ThresholdShipping{
		Threshold: c.ShippingThreshold,
		Fee:       c.ShippingFee,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return d
}

func getEnvDecimal(key, def string, errs *[]error) decimal.Decimal {
	d, err := decimal.NewFromString(getEnv(key, def))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return decimal.Zero
	}

	return d
}
