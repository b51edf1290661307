// internal/cache/factory.go - Cache strategy selection
package cache

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"mvtserve/internal/config"
)

// New creates the cache strategy selected by configuration.
func New(cfg *config.CacheConfig) (Cache, error) {
	switch cfg.Strategy {
	case "", "none":
		log.Info("tile cache disabled")
		return NewNoop(), nil
	case "file":
		log.Infof("using file cache in %s", cfg.BaseDir)
		return NewFile(cfg.BaseDir)
	case "memory":
		log.Infof("using memory cache, max %d entries", cfg.MaxEntries)
		return NewMemory(cfg.MaxEntries), nil
	case "sqlite":
		log.Infof("using sqlite cache at %s", cfg.Path)
		return NewSQLite(cfg.Path)
	case "redis":
		log.Infof("using redis cache at %s", cfg.RedisAddr)
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
	default:
		return nil, fmt.Errorf("unknown cache strategy: %s (supported: none, file, memory, sqlite, redis)", cfg.Strategy)
	}
}
