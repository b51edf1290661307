// cmd/serve.go - Serve command implementation
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mvtserve/internal/config"
	"mvtserve/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve vector tiles over HTTP",
	Long: `Start the HTTP tile endpoint. Tiles are generated on demand from the
configured layers and cached according to the configured strategy.

The endpoint is GET /tiles/{tileset}/{z}/{x}/{y}.pbf where {tileset} is a
configured tileset name or a direct layer name.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("bind", "0.0.0.0", "listen address")
	serveCmd.Flags().Int("port", 6767, "listen port")

	viper.BindPFlag("server.bind", serveCmd.Flags().Lookup("bind"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.New(svc, &cfg.Server).Run()
}
