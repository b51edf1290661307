// internal/config/validation.go - Configuration validation
package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Validate checks the configuration for inconsistencies before any
// collaborator is constructed from it.
func Validate(cfg *Config) error {
	if err := validateDatasource(&cfg.Datasource, len(cfg.Layers) > 0); err != nil {
		return err
	}
	if err := validateGrid(&cfg.Grid); err != nil {
		return err
	}
	if err := validateLayers(cfg.Layers); err != nil {
		return err
	}
	if err := validateCache(&cfg.Cache); err != nil {
		return err
	}
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}
	return validateLogging(&cfg.Logging)
}

func validateDatasource(cfg *DatasourceConfig, hasLayers bool) error {
	if cfg.Type != "postgis" {
		return fmt.Errorf("unsupported datasource type: %s (supported: postgis)", cfg.Type)
	}
	if hasLayers && cfg.URL == "" {
		return fmt.Errorf("datasource.url is required when layers are configured")
	}
	return nil
}

func validateGrid(cfg *GridConfig) error {
	switch cfg.Predefined {
	case "", "web_mercator", "wgs84":
		return nil
	default:
		return fmt.Errorf("unknown grid.predefined: %s (supported: web_mercator, wgs84)", cfg.Predefined)
	}
}

func validateLayers(layers []LayerConfig) error {
	for i, l := range layers {
		if l.Name == "" {
			return fmt.Errorf("layers[%d]: name is required", i)
		}
		if l.TableName == "" && l.Query == "" {
			return fmt.Errorf("layer %s: table_name or query is required", l.Name)
		}
		if l.QueryLimit < 0 {
			return fmt.Errorf("layer %s: query_limit must not be negative", l.Name)
		}
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	switch cfg.Strategy {
	case "", "none", "memory":
		return nil
	case "file":
		if cfg.BaseDir == "" {
			return fmt.Errorf("cache.base_dir is required for the file strategy")
		}
	case "sqlite":
		if cfg.Path == "" {
			return fmt.Errorf("cache.path is required for the sqlite strategy")
		}
	case "redis":
		if cfg.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis strategy")
		}
	default:
		return fmt.Errorf("unknown cache.strategy: %s (supported: none, file, memory, sqlite, redis)", cfg.Strategy)
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Port)
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	if _, err := logrus.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	switch cfg.Format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown logging.format: %s (supported: text, json)", cfg.Format)
	}
}
