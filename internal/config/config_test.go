// internal/config/config_test.go - Unit tests for configuration handling
package config

import (
	"testing"

	"github.com/spf13/viper"
)

func validConfig() *Config {
	return &Config{
		Datasource: DatasourceConfig{Type: "postgis", URL: "postgresql://localhost/gis"},
		Grid:       GridConfig{Predefined: "web_mercator"},
		Layers: []LayerConfig{
			{Name: "points", TableName: "ne_10m_populated_places"},
		},
		Cache:   CacheConfig{Strategy: "none"},
		Server:  ServerConfig{Bind: "0.0.0.0", Port: 6767},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Grid.Predefined != "web_mercator" {
		t.Errorf("Expected default grid web_mercator, got %s", cfg.Grid.Predefined)
	}
	if cfg.Cache.Strategy != "none" {
		t.Errorf("Expected default cache strategy none, got %s", cfg.Cache.Strategy)
	}
	if cfg.Server.Port != 6767 {
		t.Errorf("Expected default port 6767, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad datasource type", func(c *Config) { c.Datasource.Type = "mysql" }, true},
		{"missing url with layers", func(c *Config) { c.Datasource.URL = "" }, true},
		{"missing url without layers", func(c *Config) { c.Datasource.URL = ""; c.Layers = nil }, false},
		{"bad grid", func(c *Config) { c.Grid.Predefined = "utm" }, true},
		{"layer without name", func(c *Config) { c.Layers[0].Name = "" }, true},
		{"layer without source", func(c *Config) { c.Layers[0].TableName = "" }, true},
		{"layer with query only", func(c *Config) {
			c.Layers[0].TableName = ""
			c.Layers[0].Query = "SELECT ST_AsBinary(geom) FROM t WHERE geom && !bbox!"
		}, false},
		{"negative query limit", func(c *Config) { c.Layers[0].QueryLimit = -1 }, true},
		{"unknown cache strategy", func(c *Config) { c.Cache.Strategy = "memcached" }, true},
		{"file cache without dir", func(c *Config) { c.Cache.Strategy = "file" }, true},
		{"sqlite cache without path", func(c *Config) { c.Cache.Strategy = "sqlite" }, true},
		{"redis cache without addr", func(c *Config) { c.Cache.Strategy = "redis" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToLayer(t *testing.T) {
	lc := LayerConfig{
		Name:          "points",
		TableName:     "places",
		GeometryField: "wkb_geometry",
		GeometryType:  "POINT",
		QueryLimit:    1,
	}

	l := lc.ToLayer()
	if l.Name != "points" || l.TableName != "places" {
		t.Errorf("Unexpected layer conversion: %+v", l)
	}
	if l.GeometryField != "wkb_geometry" || l.QueryLimit != 1 {
		t.Errorf("Unexpected layer conversion: %+v", l)
	}
}
