// internal/config/config.go - Configuration management
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"mvtserve/internal/layer"
)

// Config represents the complete application configuration
type Config struct {
	Datasource DatasourceConfig `mapstructure:"datasource"`
	Grid       GridConfig       `mapstructure:"grid"`
	Layers     []LayerConfig    `mapstructure:"layers"`
	Tilesets   []TilesetConfig  `mapstructure:"tilesets"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// DatasourceConfig describes the spatial data backend
type DatasourceConfig struct {
	Type string `mapstructure:"type"`
	URL  string `mapstructure:"url"`
}

// GridConfig selects the tiling grid
type GridConfig struct {
	Predefined string `mapstructure:"predefined"`
}

// LayerConfig describes one data layer
type LayerConfig struct {
	Name          string `mapstructure:"name"`
	TableName     string `mapstructure:"table_name"`
	GeometryField string `mapstructure:"geometry_field"`
	GeometryType  string `mapstructure:"geometry_type"`
	FIDField      string `mapstructure:"fid_field"`
	Query         string `mapstructure:"query"`
	QueryLimit    int    `mapstructure:"query_limit"`
	SRID          int    `mapstructure:"srid"`
}

// TilesetConfig names an ordered group of layers composited into one tile
type TilesetConfig struct {
	Name   string   `mapstructure:"name"`
	Layers []string `mapstructure:"layers"`
}

// CacheConfig selects and parameterizes the cache strategy
type CacheConfig struct {
	Strategy      string        `mapstructure:"strategy"`
	BaseDir       string        `mapstructure:"base_dir"`
	Path          string        `mapstructure:"path"`
	MaxEntries    int           `mapstructure:"max_entries"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisTTL      time.Duration `mapstructure:"redis_ttl"`
}

// ServerConfig contains the HTTP tile endpoint configuration
type ServerConfig struct {
	Bind string `mapstructure:"bind"`
	Port int    `mapstructure:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file, environment and bound flags
func Load() (*Config, error) {
	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults configures default values for all configuration options
func setDefaults() {
	viper.SetDefault("datasource.type", "postgis")

	viper.SetDefault("grid.predefined", "web_mercator")

	viper.SetDefault("cache.strategy", "none")
	viper.SetDefault("cache.max_entries", 1000)
	viper.SetDefault("cache.redis_ttl", 24*time.Hour)

	viper.SetDefault("server.bind", "0.0.0.0")
	viper.SetDefault("server.port", 6767)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// ToLayer converts a layer configuration into a layer definition
func (lc LayerConfig) ToLayer() *layer.Layer {
	return &layer.Layer{
		Name:          lc.Name,
		TableName:     lc.TableName,
		GeometryField: lc.GeometryField,
		GeometryType:  lc.GeometryType,
		FIDField:      lc.FIDField,
		Query:         lc.Query,
		QueryLimit:    lc.QueryLimit,
		SRID:          lc.SRID,
	}
}
