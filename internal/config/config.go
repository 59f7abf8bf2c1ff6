// Package config reads the storefront settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Order log variants.
const (
	OrderLogFile   = "file"
	OrderLogMemory = "memory"
)

// Order id strategies.
const (
	OrderIDCounter   = "counter"
	OrderIDTimestamp = "timestamp"
	OrderIDUUID      = "uuid"
)

// Catalog sources.
const (
	CatalogBuiltin  = "builtin"
	CatalogYAML     = "yaml"
	CatalogPostgres = "postgres"
	CatalogRedis    = "redis"
)

// Config holds the runtime settings of the storefront.
type Config struct {
	ServiceName string

	OrderLog     string
	OrderLogPath string
	OrderID      string

	CatalogSource   string
	CatalogFile     string
	DatabaseURL     string
	RedisAddr       string
	CatalogRedisKey string

	LogLevel string
	LogFile  string

	TraceExporter    string
	OTELHost         string
	TraceProbability float64
}

// Load reads Config from the environment, applying defaults and rejecting
// unknown option values.
func Load() (Config, error) {
	cfg := Config{
		ServiceName:      getenv("SERVICE_NAME", "storefront"),
		OrderLog:         strings.ToLower(getenv("STORE_ORDER_LOG", OrderLogFile)),
		OrderLogPath:     getenv("STORE_ORDER_LOG_PATH", "orders.log"),
		OrderID:          strings.ToLower(getenv("STORE_ORDER_ID", OrderIDCounter)),
		CatalogSource:    strings.ToLower(getenv("STORE_CATALOG_SOURCE", CatalogBuiltin)),
		CatalogFile:      getenv("STORE_CATALOG_FILE", "catalog.yaml"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		CatalogRedisKey:  getenv("STORE_CATALOG_REDIS_KEY", "storefront:catalog"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		LogFile:          getenv("LOG_FILE", "storefront.log"),
		TraceExporter:    strings.ToLower(getenv("TRACE_EXPORTER", "none")),
		OTELHost:         os.Getenv("OTEL_HOST"),
		TraceProbability: 1.0,
	}
	if v := os.Getenv("TRACE_PROBABILITY"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 || p > 1 {
			return Config{}, fmt.Errorf("TRACE_PROBABILITY %q: must be a number in [0,1]", v)
		}
		cfg.TraceProbability = p
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if !oneOf(c.OrderLog, OrderLogFile, OrderLogMemory) {
		return fmt.Errorf("STORE_ORDER_LOG %q: want %s or %s", c.OrderLog, OrderLogFile, OrderLogMemory)
	}
	if !oneOf(c.OrderID, OrderIDCounter, OrderIDTimestamp, OrderIDUUID) {
		return fmt.Errorf("STORE_ORDER_ID %q: want counter, timestamp or uuid", c.OrderID)
	}
	if !oneOf(c.CatalogSource, CatalogBuiltin, CatalogYAML, CatalogPostgres, CatalogRedis) {
		return fmt.Errorf("STORE_CATALOG_SOURCE %q: want builtin, yaml, postgres or redis", c.CatalogSource)
	}
	if c.CatalogSource == CatalogPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres catalog")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
