// cmd/root.go - Root command implementation
package cmd

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mvtserve/internal/cache"
	"mvtserve/internal/config"
	"mvtserve/internal/datasource"
	"mvtserve/internal/grid"
	"mvtserve/internal/layer"
	"mvtserve/internal/service"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mvtserve",
	Short: "Serve Mapbox Vector Tiles from a spatial database",
	Long: `mvtserve generates Mapbox Vector Tiles on demand from a PostGIS
backend and serves them over HTTP, with transparent caching of the encoded
tiles behind interchangeable strategies (file, memory, sqlite, redis).

Examples:
  # Serve tiles using a configuration file
  mvtserve serve --config mvtserve.toml

  # Render a single tile to a file
  mvtserve tile points --z 6 --x 33 --y 22 --output tile.pbf

  # Pre-seed the cache for a region
  mvtserve seed points --min-zoom 4 --max-zoom 8 --bbox "-74.0,40.7,-73.9,40.8"

  # Print a commented sample configuration
  mvtserve genconfig`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mvtserve.toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("cache-strategy", "none", "cache strategy (none, file, memory, sqlite, redis)")
	rootCmd.PersistentFlags().String("cache-dir", "", "base directory for the file cache strategy")
	rootCmd.PersistentFlags().String("datasource-url", "", "PostGIS connection URL")

	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("cache.strategy", rootCmd.PersistentFlags().Lookup("cache-strategy"))
	viper.BindPFlag("cache.base_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("datasource.url", rootCmd.PersistentFlags().Lookup("datasource-url"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName("mvtserve")
	}

	viper.SetEnvPrefix("MVTSERVE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
}

// initLogging configures the process-wide logger from configuration.
func initLogging() {
	if viper.GetString("logging.format") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&nested.Formatter{
			HideKeys:        true,
			ShowFullLevel:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	level, err := log.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// buildService constructs the tile service and its collaborators from
// configuration. The returned cleanup releases collaborator resources.
func buildService(cfg *config.Config) (*service.MVTService, func(), error) {
	g, err := grid.Predefined(cfg.Grid.Predefined)
	if err != nil {
		return nil, nil, err
	}

	input, err := datasource.NewPostGIS(cfg.Datasource.URL)
	if err != nil {
		return nil, nil, err
	}

	tileCache, err := cache.New(&cfg.Cache)
	if err != nil {
		input.Close()
		return nil, nil, err
	}

	layers := make([]*layer.Layer, 0, len(cfg.Layers))
	for _, lc := range cfg.Layers {
		layers = append(layers, lc.ToLayer())
	}

	tilesets := make([]service.Tileset, 0, len(cfg.Tilesets))
	for _, tc := range cfg.Tilesets {
		tilesets = append(tilesets, service.Tileset{Name: tc.Name, Layers: tc.Layers})
	}

	svc := &service.MVTService{
		Input:    input,
		Grid:     g,
		Layers:   layers,
		Tilesets: tilesets,
		Cache:    tileCache,
	}
	cleanup := func() {
		input.Close()
	}
	return svc, cleanup, nil
}
