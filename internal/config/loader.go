package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "dealerdesk.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "DEALERDESK_PORT")
	setString(&cfg.Server.CORSOrigin, "DEALERDESK_CORS_ORIGIN")
	setDuration(&cfg.Server.Timeout, "DEALERDESK_SERVER_TIMEOUT")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "DEALERDESK_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "DEALERDESK_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "DEALERDESK_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "DEALERDESK_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "DEALERDESK_PG_HEALTH_CHECK")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setInt(&cfg.Redis.PoolSize, "DEALERDESK_REDIS_POOL_SIZE")
	setString(&cfg.NATS.URL, "NATS_URL")
	setDuration(&cfg.Cache.ListTTL, "DEALERDESK_CACHE_LIST_TTL")
	setInt64(&cfg.Cache.LocalMaxBytes, "DEALERDESK_CACHE_LOCAL_MAX_BYTES")
	setDuration(&cfg.Cache.LocalTTL, "DEALERDESK_CACHE_LOCAL_TTL")
	setString(&cfg.Export.Dir, "DEALERDESK_EXPORT_DIR")
	setString(&cfg.Otel.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Logging.Level, "DEALERDESK_LOG_LEVEL")
	setString(&cfg.Logging.Service, "DEALERDESK_LOG_SERVICE")
}

// validate rejects configurations that cannot work.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres dsn is required")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("redis addr is required")
	}
	if cfg.Cache.ListTTL <= 0 {
		return errors.New("cache list_ttl must be positive")
	}
	if cfg.Cache.LocalMaxBytes <= 0 {
		return errors.New("cache local_max_bytes must be positive")
	}
	if cfg.Export.Dir == "" {
		return errors.New("export dir is required")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
